package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/http/response"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
	"github.com/yungbote/tripcraft-backend/internal/services"
)

type TripHandler struct {
	log   *logger.Logger
	trips services.TripService
}

func NewTripHandler(log *logger.Logger, tripService services.TripService) *TripHandler {
	return &TripHandler{log: log.With("handler", "TripHandler"), trips: tripService}
}

// GET /api/trips
func (h *TripHandler) ListTrips(c *gin.Context) {
	list, err := h.trips.List(c.Request.Context())
	if err != nil {
		h.fail(c, "ListTrips", err)
		return
	}
	response.RespondOK(c, gin.H{"trips": list})
}

// POST /api/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var in services.CreateTripInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	trip, err := h.trips.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "CreateTrip", err)
		return
	}
	response.RespondCreated(c, gin.H{"trip": trip})
}

// GET /api/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.trips.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "GetTrip", err)
		return
	}
	response.RespondOK(c, gin.H{"trip": trip})
}

type renameTripRequest struct {
	Name string `json:"name"`
}

// PATCH /api/trips/:id
func (h *TripHandler) RenameTrip(c *gin.Context) {
	var req renameTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	trip, changed, err := h.trips.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		h.fail(c, "RenameTrip", err)
		return
	}
	response.RespondOK(c, gin.H{"trip": trip, "changed": changed})
}

// DELETE /api/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.trips.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "DeleteTrip", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/trips/:id/restore
func (h *TripHandler) RestoreTrip(c *gin.Context) {
	trip, err := h.trips.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "RestoreTrip", err)
		return
	}
	response.RespondOK(c, gin.H{"trip": trip})
}

type updateItineraryRequest struct {
	Itinerary *trips.Itinerary `json:"itinerary"`
}

// PUT /api/trips/:id/itinerary
func (h *TripHandler) UpdateItinerary(c *gin.Context) {
	var req updateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Itinerary == nil {
		response.RespondError(c, http.StatusBadRequest, "itinerary_required", nil)
		return
	}
	edit, err := h.trips.UpdateItinerary(c.Request.Context(), c.Param("id"), *req.Itinerary)
	if err != nil {
		h.fail(c, "UpdateItinerary", err)
		return
	}
	response.RespondOK(c, edit)
}

// POST /api/trips/:id/undo
func (h *TripHandler) Undo(c *gin.Context) {
	edit, err := h.trips.Undo(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "Undo", err)
		return
	}
	response.RespondOK(c, edit)
}

// POST /api/trips/:id/redo
func (h *TripHandler) Redo(c *gin.Context) {
	edit, err := h.trips.Redo(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "Redo", err)
		return
	}
	response.RespondOK(c, edit)
}

// GET /api/trips/:id/history
func (h *TripHandler) History(c *gin.Context) {
	hist, err := h.trips.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "History", err)
		return
	}
	response.RespondOK(c, hist)
}

func (h *TripHandler) fail(c *gin.Context, op string, err error) {
	failWith(c, h.log, op, err)
}
