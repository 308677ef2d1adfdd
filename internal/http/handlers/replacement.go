package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tripcraft-backend/internal/http/response"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
	"github.com/yungbote/tripcraft-backend/internal/services"
)

const maxCandidatesCap = 50

type ReplacementHandler struct {
	log          *logger.Logger
	replacements services.ReplacementService
	trips        services.TripService
}

func NewReplacementHandler(log *logger.Logger, replacements services.ReplacementService, tripService services.TripService) *ReplacementHandler {
	return &ReplacementHandler{
		log:          log.With("handler", "ReplacementHandler"),
		replacements: replacements,
		trips:        tripService,
	}
}

// GET /api/trips/:id/days/:dayId/activities/:activityId/replacements?max=&date=&requirePlaceId=
func (h *ReplacementHandler) ListCandidates(c *gin.Context) {
	limit, ok := queryInt(c, "max", 0)
	if !ok || limit < 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_max", nil)
		return
	}
	if limit > maxCandidatesCap {
		limit = maxCandidatesCap
	}
	opts, err := h.replacements.Suggest(c.Request.Context(), services.SuggestRequest{
		TripID:         c.Param("id"),
		DayID:          c.Param("dayId"),
		ActivityID:     c.Param("activityId"),
		MaxCandidates:  limit,
		Date:           c.Query("date"),
		RequirePlaceID: queryBool(c, "requirePlaceId"),
	})
	if err != nil {
		failWith(c, h.log, "ListCandidates", err)
		return
	}
	response.RespondOK(c, opts)
}

type applyReplacementRequest struct {
	LocationID string `json:"locationId"`
}

// POST /api/trips/:id/days/:dayId/activities/:activityId/replace
func (h *ReplacementHandler) ApplyReplacement(c *gin.Context) {
	var req applyReplacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	edit, err := h.trips.ApplyReplacement(c.Request.Context(), c.Param("id"), c.Param("dayId"), c.Param("activityId"), req.LocationID)
	if err != nil {
		failWith(c, h.log, "ApplyReplacement", err)
		return
	}
	response.RespondOK(c, edit)
}
