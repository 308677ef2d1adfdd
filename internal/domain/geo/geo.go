package geo

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) IsZero() bool { return c.Lat == 0 && c.Lng == 0 }

type TravelMode string

const (
	TravelModeWalk    TravelMode = "walk"
	TravelModeTransit TravelMode = "transit"
	TravelModeTaxi    TravelMode = "taxi"
)
