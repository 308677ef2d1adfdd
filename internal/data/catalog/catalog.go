// Package catalog reads location catalog files (YAML or JSON) into
// validated Location rows for the seed command.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/tripcraft-backend/internal/domain/places"
)

// Entry is one catalog record. YAML input is normalised through JSON, so
// the json tags are the file format for both.
type Entry struct {
	ID                   string                 `json:"id"`
	Name                 string                 `json:"name"`
	City                 string                 `json:"city"`
	Region               string                 `json:"region,omitempty"`
	Prefecture           string                 `json:"prefecture,omitempty"`
	Neighborhood         string                 `json:"neighborhood,omitempty"`
	Category             string                 `json:"category"`
	Lat                  float64                `json:"lat"`
	Lng                  float64                `json:"lng"`
	Rating               *float64               `json:"rating,omitempty"`
	ReviewCount          int                    `json:"review_count,omitempty"`
	PriceLevel           *int                   `json:"price_level,omitempty"`
	WheelchairAccessible *bool                  `json:"wheelchair_accessible,omitempty"`
	Dietary              []string               `json:"dietary_options,omitempty"`
	Meals                []string               `json:"meal_options,omitempty"`
	GoodForGroups        *bool                  `json:"good_for_groups,omitempty"`
	GoodForChildren      *bool                  `json:"good_for_children,omitempty"`
	Tags                 []string               `json:"tags,omitempty"`
	Hours                *places.OperatingHours `json:"operating_hours,omitempty"`
	VisitMinutes         int                    `json:"recommended_visit_minutes,omitempty"`
	BusinessStatus       string                 `json:"business_status,omitempty"`
	PlaceID              string                 `json:"place_id,omitempty"`
}

type file struct {
	Locations []Entry `json:"locations"`
}

// Parse decodes a catalog. The format follows the file extension (".json",
// otherwise YAML). The document is either a list of entries or an object
// with a "locations" list.
func Parse(data []byte, filename string) ([]Entry, error) {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return nil, nil
	}
	if !strings.EqualFold(filepath.Ext(filename), ".json") {
		var doc interface{}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("normalise yaml: %w", err)
		}
		raw = b
	}

	if raw[0] == '[' {
		var entries []Entry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("parse catalog: %w", err)
		}
		return entries, nil
	}
	var f file
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return f.Locations, nil
}

func (e Entry) Validate() error {
	var errs []error
	if strings.TrimSpace(e.ID) == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(e.City) == "" {
		errs = append(errs, errors.New("city is required"))
	}
	if strings.TrimSpace(e.Category) == "" {
		errs = append(errs, errors.New("category is required"))
	}
	if e.Lat < -90 || e.Lat > 90 || e.Lng < -180 || e.Lng > 180 {
		errs = append(errs, fmt.Errorf("coordinates out of range (%v, %v)", e.Lat, e.Lng))
	}
	if e.Rating != nil && (*e.Rating < 0 || *e.Rating > 5) {
		errs = append(errs, fmt.Errorf("rating %v outside 0..5", *e.Rating))
	}
	if e.PriceLevel != nil && (*e.PriceLevel < 0 || *e.PriceLevel > 4) {
		errs = append(errs, fmt.Errorf("price_level %d outside 0..4", *e.PriceLevel))
	}
	if e.ReviewCount < 0 || e.VisitMinutes < 0 {
		errs = append(errs, errors.New("counts must not be negative"))
	}
	switch strings.ToUpper(strings.TrimSpace(e.BusinessStatus)) {
	case "", places.BusinessStatusOperational, places.BusinessStatusClosedTemporarily, places.BusinessStatusClosedPermanently:
	default:
		errs = append(errs, fmt.Errorf("unknown business_status %q", e.BusinessStatus))
	}
	if len(errs) == 0 {
		return nil
	}
	label := e.ID
	if label == "" {
		label = e.Name
	}
	return fmt.Errorf("location %q: %w", label, errors.Join(errs...))
}

func (e Entry) ToLocation() *places.Location {
	loc := &places.Location{
		ID:                      strings.TrimSpace(e.ID),
		Name:                    strings.TrimSpace(e.Name),
		City:                    strings.TrimSpace(e.City),
		Region:                  e.Region,
		Prefecture:              e.Prefecture,
		Neighborhood:            e.Neighborhood,
		Category:                strings.ToLower(strings.TrimSpace(e.Category)),
		Latitude:                e.Lat,
		Longitude:               e.Lng,
		Rating:                  e.Rating,
		ReviewCount:             e.ReviewCount,
		PriceLevel:              e.PriceLevel,
		WheelchairAccessible:    e.WheelchairAccessible,
		DietaryOptions:          places.StringList(e.Dietary...),
		MealOptions:             places.StringList(e.Meals...),
		GoodForGroups:           e.GoodForGroups,
		GoodForChildren:         e.GoodForChildren,
		Tags:                    places.StringList(e.Tags...),
		RecommendedVisitMinutes: e.VisitMinutes,
		BusinessStatus:          strings.ToUpper(strings.TrimSpace(e.BusinessStatus)),
		PlaceID:                 strings.TrimSpace(e.PlaceID),
	}
	if loc.BusinessStatus == "" {
		loc.BusinessStatus = places.BusinessStatusOperational
	}
	if e.Hours != nil {
		if b, err := json.Marshal(e.Hours); err == nil {
			loc.OperatingHours = b
		}
	}
	return loc
}

// Locations validates every entry and converts the valid ones. Later
// duplicates of an id are reported and skipped.
func Locations(entries []Entry) ([]*places.Location, []error) {
	out := make([]*places.Location, 0, len(entries))
	var errs []error
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		id := strings.TrimSpace(e.ID)
		if first, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("entry %d: duplicate id %q (first at %d)", i, id, first))
			continue
		}
		seen[id] = i
		out = append(out, e.ToLocation())
	}
	return out, errs
}

// Batches splits locs into chunks of at most size.
func Batches(locs []*places.Location, size int) [][]*places.Location {
	if size <= 0 {
		size = len(locs)
	}
	var out [][]*places.Location
	for start := 0; start < len(locs); start += size {
		end := start + size
		if end > len(locs) {
			end = len(locs)
		}
		out = append(out, locs[start:end])
	}
	return out
}

// Cities lists the distinct cities in locs, lowercased.
func Cities(locs []*places.Location) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, l := range locs {
		c := strings.ToLower(strings.TrimSpace(l.City))
		if _, ok := seen[c]; ok || c == "" {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// IDs lists the location ids in locs, in order.
func IDs(locs []*places.Location) []string {
	out := make([]string, 0, len(locs))
	for _, l := range locs {
		if id := strings.TrimSpace(l.ID); id != "" {
			out = append(out, id)
		}
	}
	return out
}
