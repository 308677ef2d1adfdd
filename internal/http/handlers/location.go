package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tripcraft-backend/internal/data/repos"
	"github.com/yungbote/tripcraft-backend/internal/http/response"
	"github.com/yungbote/tripcraft-backend/internal/modules/replacement"
	"github.com/yungbote/tripcraft-backend/internal/pkg/dbctx"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

const (
	defaultLocationLimit = 50
	maxLocationLimit     = 200
)

type LocationHandler struct {
	log   *logger.Logger
	store replacement.LocationStore
	repo  repos.LocationRepo
}

// NewLocationHandler reads through store (possibly cached); repo serves the
// city listing.
func NewLocationHandler(log *logger.Logger, store replacement.LocationStore, repo repos.LocationRepo) *LocationHandler {
	return &LocationHandler{log: log.With("handler", "LocationHandler"), store: store, repo: repo}
}

// GET /api/locations?city=&limit=&requirePlaceId=
func (h *LocationHandler) ListByCity(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		response.RespondError(c, http.StatusBadRequest, "city_required", nil)
		return
	}
	limit, ok := queryInt(c, "limit", defaultLocationLimit)
	if !ok || limit <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_limit", nil)
		return
	}
	if limit > maxLocationLimit {
		limit = maxLocationLimit
	}
	locs, err := h.store.FetchLocationsByCity(c.Request.Context(), city, replacement.Query{
		Limit:          limit,
		RequirePlaceID: queryBool(c, "requirePlaceId"),
	})
	if err != nil {
		failWith(c, h.log, "ListByCity", err)
		return
	}
	response.RespondOK(c, gin.H{"city": city, "locations": locs})
}

// GET /api/locations/:locationId
func (h *LocationHandler) GetLocation(c *gin.Context) {
	loc, err := h.store.GetLocation(c.Request.Context(), c.Param("locationId"))
	if err != nil {
		failWith(c, h.log, "GetLocation", err)
		return
	}
	if loc == nil {
		response.RespondError(c, http.StatusNotFound, "location_not_found", nil)
		return
	}
	response.RespondOK(c, gin.H{"location": loc})
}

// GET /api/cities
func (h *LocationHandler) ListCities(c *gin.Context) {
	if h.repo == nil {
		response.RespondOK(c, gin.H{"cities": []string{}})
		return
	}
	cities, err := h.repo.ListCities(dbctx.Context{Ctx: c.Request.Context()})
	if err != nil {
		failWith(c, h.log, "ListCities", err)
		return
	}
	response.RespondOK(c, gin.H{"cities": cities})
}
