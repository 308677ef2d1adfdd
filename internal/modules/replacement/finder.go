package replacement

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/domain/weather"
	"github.com/yungbote/tripcraft-backend/internal/modules/scoring"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

const (
	DefaultMaxCandidates = 10
	// MaxRawCandidates caps how many store rows get scored per call.
	MaxRawCandidates = 100
)

// Query narrows a city lookup.
type Query struct {
	Limit          int
	ExcludeIDs     []string
	RequirePlaceID bool
}

// LocationStore is the read side of the location catalog. GetLocation returns
// (nil, nil) when the id is unknown. FetchLocationsByCity matches the city
// case-insensitively and never returns permanently closed locations.
type LocationStore interface {
	GetLocation(ctx context.Context, id string) (*places.Location, error)
	FetchLocationsByCity(ctx context.Context, city string, q Query) ([]*places.Location, error)
}

type Request struct {
	Activity      trips.Activity
	TripData      trips.TripBuilderData
	AllActivities []trips.Activity
	DayActivities []trips.Activity
	DayIndex      int
	MaxCandidates int

	Weather *weather.Forecast
	// Date overrides the date derived from TripData.StartDate and DayIndex.
	Date time.Time
	// RequirePlaceID restricts candidates to locations linked to a place id.
	RequirePlaceID bool
}

type ReplacementCandidate struct {
	Location  *places.Location  `json:"location"`
	Score     float64           `json:"score"`
	Breakdown scoring.Breakdown `json:"breakdown"`
	Reasoning []string          `json:"reasoning"`
}

type ReplacementOptions struct {
	Candidates       []ReplacementCandidate `json:"candidates"`
	OriginalActivity trips.Activity         `json:"originalActivity"`
}

type Finder struct {
	store  LocationStore
	tables *scoring.Tables
	log    *logger.Logger
}

func NewFinder(store LocationStore, tables *scoring.Tables, baseLog *logger.Logger) *Finder {
	if tables == nil {
		tables = scoring.DefaultTables()
	}
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &Finder{store: store, tables: tables, log: baseLog.With("module", "replacement")}
}

// FindCandidates scores same-city alternatives for req.Activity. An empty
// result is not an error; store failures are returned as-is (wrapped).
func (f *Finder) FindCandidates(ctx context.Context, req Request) (*ReplacementOptions, error) {
	out := &ReplacementOptions{
		Candidates:       []ReplacementCandidate{},
		OriginalActivity: req.Activity,
	}
	maxCandidates := req.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}

	var original *places.Location
	if id := req.Activity.LocationID(); id != "" {
		loc, err := f.store.GetLocation(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve original location %q: %w", id, err)
		}
		original = loc
	}

	exclude := excludedIDs(req.AllActivities, req.Activity, original)
	criteria := f.criteria(req, original)

	city := targetCity(req.Activity, original)
	if city == "" {
		f.log.Debug("No target city for replacement", "activity_id", req.Activity.ID)
		return out, nil
	}

	locs, err := f.store.FetchLocationsByCity(ctx, city, Query{
		Limit:          MaxRawCandidates,
		ExcludeIDs:     exclude,
		RequirePlaceID: req.RequirePlaceID,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch candidates in %q: %w", city, err)
	}
	if len(locs) > MaxRawCandidates {
		locs = locs[:MaxRawCandidates]
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	for _, loc := range locs {
		if loc == nil {
			continue
		}
		if _, skip := excluded[loc.ID]; skip {
			continue
		}
		res := f.tables.ScoreLocation(loc, criteria)
		out.Candidates = append(out.Candidates, ReplacementCandidate{
			Location:  loc,
			Score:     res.Score,
			Breakdown: res.Breakdown,
			Reasoning: res.Reasoning,
		})
	}

	sort.SliceStable(out.Candidates, func(i, j int) bool {
		return out.Candidates[i].Score > out.Candidates[j].Score
	})
	if len(out.Candidates) > maxCandidates {
		out.Candidates = out.Candidates[:maxCandidates]
	}
	f.log.Debug("Replacement candidates scored",
		"activity_id", req.Activity.ID,
		"city", city,
		"fetched", len(locs),
		"returned", len(out.Candidates),
	)
	return out, nil
}

func (f *Finder) criteria(req Request, original *places.Location) scoring.Criteria {
	c := scoring.CriteriaFromTrip(req.TripData)
	c.AvailableMinutes = req.Activity.DurationMinutes
	c.TimeOfDay = req.Activity.TimeOfDay
	c.RecentCategories = recentCategories(req.DayActivities, req.Activity.ID, f.tables)
	c.Weather = req.Weather
	if !req.Date.IsZero() {
		c.Date = req.Date
	} else {
		c.Date = scoring.TripDate(req.TripData, req.DayIndex)
	}
	if original != nil {
		if coords := original.Coordinates(); !coords.IsZero() {
			c.CurrentLocation = &coords
		}
	}
	return c
}

func excludedIDs(all []trips.Activity, activity trips.Activity, original *places.Location) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, a := range all {
		add(a.LocationID())
	}
	add(activity.LocationID())
	if original != nil {
		add(original.ID)
	}
	return out
}

// recentCategories takes the last RecentCategoryWindow place activities of
// the day, skipping the one being replaced, and reads their categories.
// Activities without a readable category still occupy a window slot.
func recentCategories(day []trips.Activity, skipID string, tables *scoring.Tables) []string {
	var recent []trips.Activity
	for _, a := range day {
		if a.ID == skipID || !a.IsPlace() {
			continue
		}
		recent = append(recent, a)
	}
	if len(recent) > scoring.RecentCategoryWindow {
		recent = recent[len(recent)-scoring.RecentCategoryWindow:]
	}
	var cats []string
	for _, a := range recent {
		if c := activityCategory(a, tables); c != "" {
			cats = append(cats, c)
		}
	}
	return cats
}

// activityCategory prefers a tag naming a known category, else the first
// non-blank tag.
func activityCategory(a trips.Activity, tables *scoring.Tables) string {
	fallback := ""
	for _, tag := range a.Place.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if tables != nil && tables.KnownCategory(tag) {
			return tag
		}
		if fallback == "" {
			fallback = tag
		}
	}
	return fallback
}

// targetCity prefers the original location's city. The neighborhood fallback
// may hold a district name rather than a city.
func targetCity(activity trips.Activity, original *places.Location) string {
	if original != nil {
		if c := strings.TrimSpace(original.City); c != "" {
			return c
		}
	}
	if activity.IsPlace() {
		return strings.TrimSpace(activity.Place.Neighborhood)
	}
	return ""
}
