package scoring

import (
	"fmt"
	"math"

	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/modules/routing"
)

// Per-factor bounds. Score is the plain sum of the factors.
const (
	InterestMatchMax    = 30.0
	RatingQualityMax    = 25.0
	LogisticalFitMin    = -10.0
	LogisticalFitMax    = 20.0
	BudgetFitMax        = 10.0
	AccessibilityFitMax = 10.0
	DiversityBonusMin   = -10.0
	DiversityBonusMax   = 5.0
	TimeOptimizationMin = -5.0
	TimeOptimizationMax = 5.0
)

type Breakdown struct {
	InterestMatch    float64 `json:"interestMatch"`
	RatingQuality    float64 `json:"ratingQuality"`
	LogisticalFit    float64 `json:"logisticalFit"`
	BudgetFit        float64 `json:"budgetFit"`
	AccessibilityFit float64 `json:"accessibilityFit"`
	DiversityBonus   float64 `json:"diversityBonus"`
	WeatherFit       float64 `json:"weatherFit"`
	TimeOptimization float64 `json:"timeOptimization"`
	GroupFit         float64 `json:"groupFit"`
}

func (b Breakdown) Total() float64 {
	return b.InterestMatch + b.RatingQuality + b.LogisticalFit + b.BudgetFit +
		b.AccessibilityFit + b.DiversityBonus + b.WeatherFit + b.TimeOptimization + b.GroupFit
}

type Result struct {
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
	Reasoning []string  `json:"reasoning"`
}

func ScoreLocation(loc *places.Location, c Criteria) Result {
	return DefaultTables().ScoreLocation(loc, c)
}

func (t *Tables) ScoreLocation(loc *places.Location, c Criteria) Result {
	var b Breakdown
	var reasons []string
	add := func(r string) {
		if r != "" {
			reasons = append(reasons, r)
		}
	}

	var r string
	b.InterestMatch, r = t.interestMatch(loc, c.Interests)
	add(r)
	b.RatingQuality, r = ratingQuality(loc)
	add(r)
	b.LogisticalFit, r = t.logisticalFit(loc, c)
	add(r)
	b.BudgetFit, r = budgetFit(loc, c.Budget)
	add(r)
	b.AccessibilityFit, r = accessibilityFit(loc, c.Accessibility)
	add(r)
	b.DiversityBonus, r = diversityBonus(loc, c.RecentCategories)
	add(r)

	wf := t.ScoreWeatherFit(loc, c.Weather, c.WeatherOptions)
	b.WeatherFit = float64(wf.ScoreAdjustment)
	if c.Weather != nil {
		add("Weather: " + wf.Reasoning)
	}

	b.TimeOptimization, r = t.timeOptimization(loc, c)
	add(r)

	gf := t.ScoreGroupFit(loc, c.Group)
	b.GroupFit = float64(gf.ScoreAdjustment)
	for _, gr := range gf.Reasoning {
		add("Group: " + gr)
	}

	return Result{Score: b.Total(), Breakdown: b, Reasoning: reasons}
}

func (t *Tables) interestMatch(loc *places.Location, interests []string) (float64, string) {
	if len(interests) == 0 {
		return InterestMatchMax / 2, ""
	}
	category := loc.NormalizedCategory()
	matched := 0
	for _, interest := range interests {
		id := normalize(interest)
		if id == category || contains(t.Interests[id], category) || loc.HasTag(id) {
			matched++
		}
	}
	if matched == 0 {
		return 5, ""
	}
	score := math.Min(InterestMatchMax, 20+5*float64(matched-1))
	return score, fmt.Sprintf("Matches %d of your interests", matched)
}

func ratingQuality(loc *places.Location) (float64, string) {
	if loc.Rating == nil {
		return 10, ""
	}
	base := clampFloat(*loc.Rating/5*20, 0, 20)
	confidence := 0.0
	switch {
	case loc.ReviewCount >= 1000:
		confidence = 5
	case loc.ReviewCount >= 200:
		confidence = 4
	case loc.ReviewCount >= 50:
		confidence = 3
	case loc.ReviewCount >= 10:
		confidence = 1
	}
	score := clampFloat(base+confidence, 0, RatingQualityMax)
	if *loc.Rating >= 4.5 && loc.ReviewCount >= 50 {
		return score, fmt.Sprintf("Highly rated (%.1f from %d reviews)", *loc.Rating, loc.ReviewCount)
	}
	return score, ""
}

func (t *Tables) logisticalFit(loc *places.Location, c Criteria) (float64, string) {
	score := 0.0
	var reason string

	coords := loc.Coordinates()
	if c.CurrentLocation == nil || c.CurrentLocation.IsZero() || coords.IsZero() {
		score += 5
	} else {
		d := routing.DistanceKm(*c.CurrentLocation, coords)
		switch {
		case d < 1:
			score += 12
			reason = "Within walking distance"
		case d < 3:
			score += 10
			reason = fmt.Sprintf("Close by (%.1f km)", d)
		case d < 5:
			score += 7
		case d < 10:
			score += 4
		case d < 20:
		default:
			score -= 6
			reason = fmt.Sprintf("Far from the rest of the day (%.0f km)", d)
		}
	}

	if c.AvailableMinutes <= 0 {
		score += 3
	} else {
		visit := loc.RecommendedVisitMinutes
		if visit <= 0 {
			visit = t.DefaultVisitMinutes(loc.Category)
		}
		avail := float64(c.AvailableMinutes)
		switch {
		case float64(visit) <= avail:
			score += 8
		case float64(visit) <= avail*1.25:
			score += 3
		default:
			score -= 4
			reason = joinReason(reason, fmt.Sprintf("Needs about %d min, slot has %d", visit, c.AvailableMinutes))
		}
	}
	return clampFloat(score, LogisticalFitMin, LogisticalFitMax), reason
}

// effectiveBudgetLevel falls back to the per-day amount (in yen) when no
// explicit level was chosen.
func effectiveBudgetLevel(b *trips.Budget) trips.BudgetLevel {
	if b == nil {
		return ""
	}
	if b.Level != "" {
		return b.Level
	}
	if b.PerDay != nil {
		switch {
		case *b.PerDay < 10000:
			return trips.BudgetLevelBudget
		case *b.PerDay < 30000:
			return trips.BudgetLevelModerate
		default:
			return trips.BudgetLevelLuxury
		}
	}
	return ""
}

func budgetFit(loc *places.Location, budget *trips.Budget) (float64, string) {
	level := effectiveBudgetLevel(budget)
	if loc.PriceLevel == nil || level == "" {
		return 7, ""
	}
	maxPrice := 2
	switch level {
	case trips.BudgetLevelBudget:
		maxPrice = 1
	case trips.BudgetLevelLuxury:
		maxPrice = 4
	}
	price := *loc.PriceLevel
	switch {
	case price <= maxPrice:
		return BudgetFitMax, ""
	case price == maxPrice+1:
		return 4, "Slightly above your budget"
	default:
		return 0, "Well above your budget"
	}
}

var foodCategories = []string{places.CategoryRestaurant, places.CategoryCafe, places.CategoryMarket, places.CategoryBar}

func accessibilityFit(loc *places.Location, acc *trips.Accessibility) (float64, string) {
	if acc == nil || (!acc.Wheelchair && !acc.MobilityLimits && len(acc.Dietary) == 0) {
		return AccessibilityFitMax, ""
	}
	score := 0.0
	var reason string

	if acc.Wheelchair || acc.MobilityLimits {
		switch {
		case loc.WheelchairAccessible == nil:
			score += 2
		case *loc.WheelchairAccessible:
			score += 5
			reason = "Wheelchair accessible"
		default:
			reason = "Not wheelchair accessible"
		}
	} else {
		score += 5
	}

	if len(acc.Dietary) > 0 && contains(foodCategories, loc.NormalizedCategory()) {
		offered := loc.DietaryList()
		if len(offered) == 0 {
			score += 2
		} else {
			matched := 0
			for _, d := range acc.Dietary {
				if contains(offered, normalize(d)) {
					matched++
				}
			}
			switch {
			case matched == len(acc.Dietary):
				score += 5
				reason = joinReason(reason, "Meets your dietary needs")
			case matched > 0:
				score += 3
			default:
				reason = joinReason(reason, "No options for your dietary needs")
			}
		}
	} else {
		score += 5
	}
	return clampFloat(score, 0, AccessibilityFitMax), reason
}

func diversityBonus(loc *places.Location, recent []string) (float64, string) {
	if len(recent) > RecentCategoryWindow {
		recent = recent[len(recent)-RecentCategoryWindow:]
	}
	category := loc.NormalizedCategory()
	repeats := 0
	for _, r := range recent {
		if normalize(r) == category {
			repeats++
		}
	}
	if repeats == 0 {
		return DiversityBonusMax, ""
	}
	return clampFloat(-4*float64(repeats), DiversityBonusMin, DiversityBonusMax),
		fmt.Sprintf("Already %d %s stop(s) today", repeats, category)
}

func (t *Tables) timeOptimization(loc *places.Location, c Criteria) (float64, string) {
	score := 0.0
	var reason string
	category := loc.NormalizedCategory()

	if c.TimeOfDay != "" {
		if slots, ok := t.TimeSlots[category]; ok && len(slots) > 0 {
			if contains(slots, string(c.TimeOfDay)) {
				score += 3
				reason = fmt.Sprintf("Good %s pick", c.TimeOfDay)
			} else {
				score -= 2
			}
		}
	}
	if meal, ok := slotMeals[c.TimeOfDay]; ok {
		if offered := loc.MealOptionList(); len(offered) > 0 {
			if servesAny(offered, meal) {
				score += 1
			} else {
				score -= 2
				reason = joinReason(reason, fmt.Sprintf("No %s service", meal[0]))
			}
		}
	}
	if !c.Date.IsZero() {
		if hours := loc.Hours(); hours != nil && !hours.OpenOn(c.Date.Weekday()) {
			score -= 5
			reason = joinReason(reason, fmt.Sprintf("Closed on %s", c.Date.Weekday()))
		}
	}
	return clampFloat(score, TimeOptimizationMin, TimeOptimizationMax), reason
}

// slotMeals lists the meals that count as served in a time slot, main meal first.
var slotMeals = map[trips.TimeOfDay][]string{
	trips.TimeOfDayMorning:   {"breakfast", "brunch"},
	trips.TimeOfDayAfternoon: {"lunch", "brunch"},
	trips.TimeOfDayEvening:   {"dinner"},
}

func servesAny(offered, meals []string) bool {
	for _, o := range offered {
		if contains(meals, normalize(o)) {
			return true
		}
	}
	return false
}
