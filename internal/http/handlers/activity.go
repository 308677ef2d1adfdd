package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/http/response"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
	"github.com/yungbote/tripcraft-backend/internal/services"
)

type ActivityHandler struct {
	log   *logger.Logger
	trips services.TripService
}

func NewActivityHandler(log *logger.Logger, tripService services.TripService) *ActivityHandler {
	return &ActivityHandler{log: log.With("handler", "ActivityHandler"), trips: tripService}
}

type addActivityRequest struct {
	Activity *trips.Activity `json:"activity"`
	// Position is the insert index; omitted appends.
	Position *int `json:"position,omitempty"`
}

// POST /api/trips/:id/days/:dayId/activities
func (h *ActivityHandler) AddActivity(c *gin.Context) {
	var req addActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Activity == nil {
		response.RespondError(c, http.StatusBadRequest, "activity_required", nil)
		return
	}
	position := -1
	if req.Position != nil {
		position = *req.Position
	}
	edit, err := h.trips.AddActivity(c.Request.Context(), c.Param("id"), c.Param("dayId"), *req.Activity, position)
	if err != nil {
		failWith(c, h.log, "AddActivity", err)
		return
	}
	response.RespondOK(c, edit)
}

// DELETE /api/trips/:id/days/:dayId/activities/:activityId
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	edit, err := h.trips.DeleteActivity(c.Request.Context(), c.Param("id"), c.Param("dayId"), c.Param("activityId"))
	if err != nil {
		failWith(c, h.log, "DeleteActivity", err)
		return
	}
	response.RespondOK(c, edit)
}

type replaceActivityRequest struct {
	Activity *trips.Activity `json:"activity"`
}

// PUT /api/trips/:id/days/:dayId/activities/:activityId
func (h *ActivityHandler) ReplaceActivity(c *gin.Context) {
	var req replaceActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Activity == nil {
		response.RespondError(c, http.StatusBadRequest, "activity_required", nil)
		return
	}
	edit, err := h.trips.ReplaceActivity(c.Request.Context(), c.Param("id"), c.Param("dayId"), c.Param("activityId"), *req.Activity)
	if err != nil {
		failWith(c, h.log, "ReplaceActivity", err)
		return
	}
	response.RespondOK(c, edit)
}

type reorderRequest struct {
	ActivityIDs []string `json:"activityIds"`
}

// POST /api/trips/:id/days/:dayId/reorder
func (h *ActivityHandler) ReorderActivities(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	edit, err := h.trips.ReorderActivities(c.Request.Context(), c.Param("id"), c.Param("dayId"), req.ActivityIDs)
	if err != nil {
		failWith(c, h.log, "ReorderActivities", err)
		return
	}
	response.RespondOK(c, edit)
}
