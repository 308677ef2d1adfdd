package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tripcraft-backend/internal/domain/geo"
	"github.com/yungbote/tripcraft-backend/internal/http/response"
	"github.com/yungbote/tripcraft-backend/internal/modules/routing"
)

type TravelHandler struct{}

func NewTravelHandler() *TravelHandler { return &TravelHandler{} }

// GET /api/travel-time?from=Kyoto&to=Osaka
// GET /api/travel-time?fromLat=&fromLng=&toLat=&toLng=&mode=walk
func (h *TravelHandler) TravelTime(c *gin.Context) {
	from, to := strings.TrimSpace(c.Query("from")), strings.TrimSpace(c.Query("to"))
	if from != "" || to != "" {
		if from == "" || to == "" {
			response.RespondError(c, http.StatusBadRequest, "from_and_to_required", nil)
			return
		}
		minutes, known := routing.LookupTravelMinutes(from, to)
		if !known {
			minutes = routing.TravelMinutes(from, to)
		}
		response.RespondOK(c, gin.H{"from": from, "to": to, "minutes": minutes, "known": known})
		return
	}

	a, okA := coordsFromQuery(c, "from")
	b, okB := coordsFromQuery(c, "to")
	if !okA || !okB {
		response.RespondError(c, http.StatusBadRequest, "invalid_coordinates", nil)
		return
	}
	mode := geo.TravelMode(strings.ToLower(strings.TrimSpace(c.DefaultQuery("mode", string(geo.TravelModeTransit)))))
	km := routing.DistanceKm(a, b)
	response.RespondOK(c, gin.H{
		"distanceKm": km,
		"mode":       mode,
		"minutes":    routing.EstimateTravelMinutes(km, mode),
	})
}

func coordsFromQuery(c *gin.Context, prefix string) (geo.Coordinates, bool) {
	lat, okLat := queryFloat(c, prefix+"Lat")
	lng, okLng := queryFloat(c, prefix+"Lng")
	if !okLat || !okLng || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return geo.Coordinates{}, false
	}
	return geo.Coordinates{Lat: lat, Lng: lng}, true
}
