package routing

import (
	"math"

	"github.com/yungbote/tripcraft-backend/internal/domain/geo"
)

const earthRadiusKm = 6371.0

type modeProfile struct {
	speedKmh      float64
	bufferMinutes int
}

var modeProfiles = map[geo.TravelMode]modeProfile{
	geo.TravelModeWalk:    {speedKmh: 4, bufferMinutes: 5},
	geo.TravelModeTransit: {speedKmh: 20, bufferMinutes: 10},
	geo.TravelModeTaxi:    {speedKmh: 30, bufferMinutes: 5},
}

// DistanceKm is the haversine great-circle distance.
func DistanceKm(a, b geo.Coordinates) float64 {
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// EstimateTravelMinutes is ceil(distance/speed in minutes) plus the mode's
// fixed buffer. Unknown modes are treated as transit. NaN or negative
// distances are the caller's problem.
func EstimateTravelMinutes(distanceKm float64, mode geo.TravelMode) int {
	p, ok := modeProfiles[mode]
	if !ok {
		p = modeProfiles[geo.TravelModeTransit]
	}
	return int(math.Ceil(distanceKm/p.speedKmh*60)) + p.bufferMinutes
}

// BufferMinutes is the fixed overhead EstimateTravelMinutes adds for mode.
func BufferMinutes(mode geo.TravelMode) int {
	if p, ok := modeProfiles[mode]; ok {
		return p.bufferMinutes
	}
	return modeProfiles[geo.TravelModeTransit].bufferMinutes
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
