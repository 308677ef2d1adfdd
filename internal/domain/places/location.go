package places

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/tripcraft-backend/internal/domain/geo"
)

const (
	BusinessStatusOperational       = "OPERATIONAL"
	BusinessStatusClosedTemporarily = "CLOSED_TEMPORARILY"
	BusinessStatusClosedPermanently = "CLOSED_PERMANENTLY"
)

// Location is an explorable place in the catalog. Rows are read-only to the
// scoring engine; the seed command is the only writer.
type Location struct {
	ID                      string         `gorm:"column:id;primaryKey" json:"id"`
	Name                    string         `gorm:"column:name;not null" json:"name"`
	City                    string         `gorm:"column:city;not null;index" json:"city"`
	Region                  string         `gorm:"column:region;index" json:"region,omitempty"`
	Prefecture              string         `gorm:"column:prefecture" json:"prefecture,omitempty"`
	Neighborhood            string         `gorm:"column:neighborhood" json:"neighborhood,omitempty"`
	Category                string         `gorm:"column:category;not null;index" json:"category"`
	Latitude                float64        `gorm:"column:latitude" json:"latitude"`
	Longitude               float64        `gorm:"column:longitude" json:"longitude"`
	Rating                  *float64       `gorm:"column:rating" json:"rating,omitempty"`
	ReviewCount             int            `gorm:"column:review_count;not null;default:0" json:"review_count"`
	PriceLevel              *int           `gorm:"column:price_level" json:"price_level,omitempty"`
	WheelchairAccessible    *bool          `gorm:"column:wheelchair_accessible" json:"wheelchair_accessible,omitempty"`
	DietaryOptions          datatypes.JSON `gorm:"column:dietary_options;type:jsonb" json:"dietary_options,omitempty"`
	MealOptions             datatypes.JSON `gorm:"column:meal_options;type:jsonb" json:"meal_options,omitempty"`
	GoodForGroups           *bool          `gorm:"column:good_for_groups" json:"good_for_groups,omitempty"`
	GoodForChildren         *bool          `gorm:"column:good_for_children" json:"good_for_children,omitempty"`
	Tags                    datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags,omitempty"`
	OperatingHours          datatypes.JSON `gorm:"column:operating_hours;type:jsonb" json:"operating_hours,omitempty"`
	RecommendedVisitMinutes int            `gorm:"column:recommended_visit_minutes;not null;default:0" json:"recommended_visit_minutes,omitempty"`
	BusinessStatus          string         `gorm:"column:business_status;index" json:"business_status,omitempty"`
	PlaceID                 string         `gorm:"column:place_id;index" json:"place_id,omitempty"`
	CreatedAt               time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt               time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Location) TableName() string { return "location" }

func (l *Location) Coordinates() geo.Coordinates {
	return geo.Coordinates{Lat: l.Latitude, Lng: l.Longitude}
}

func (l *Location) NormalizedCategory() string {
	return strings.ToLower(strings.TrimSpace(l.Category))
}

func (l *Location) TagList() []string        { return decodeStrings(l.Tags) }
func (l *Location) DietaryList() []string    { return decodeStrings(l.DietaryOptions) }
func (l *Location) MealOptionList() []string { return decodeStrings(l.MealOptions) }

func (l *Location) HasTag(tag string) bool {
	for _, t := range l.TagList() {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}

func (l *Location) IsPermanentlyClosed() bool {
	return strings.EqualFold(l.BusinessStatus, BusinessStatusClosedPermanently)
}

// Hours returns nil when the row has no usable opening hours.
func (l *Location) Hours() *OperatingHours {
	if len(l.OperatingHours) == 0 {
		return nil
	}
	var h OperatingHours
	if err := json.Unmarshal(l.OperatingHours, &h); err != nil || len(h.Periods) == 0 {
		return nil
	}
	return &h
}

// StringList encodes values for the JSON list columns.
func StringList(values ...string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return datatypes.JSON(b)
}

func decodeStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
