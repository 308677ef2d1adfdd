package scoring

import (
	"fmt"
	"strings"

	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
)

// Tunable bounds. The total clamp is a UX knob rather than a correctness rule.
const (
	GroupFitMin = -5
	GroupFitMax = 10

	groupTypeCap     = 4
	groupSizeCap     = 4
	childrenFitMin   = -5
	childrenFitMax   = 5
	youngChildMaxAge = 10
	teenMaxAge       = 17
)

type GroupFit struct {
	ScoreAdjustment int      `json:"scoreAdjustment"`
	Reasoning       []string `json:"reasoning,omitempty"`
}

func ScoreGroupFit(loc *places.Location, group *trips.GroupComposition) GroupFit {
	return DefaultTables().ScoreGroupFit(loc, group)
}

// ScoreGroupFit sums the capped type, size and children contributions and
// clamps the total to [GroupFitMin, GroupFitMax].
func (t *Tables) ScoreGroupFit(loc *places.Location, group *trips.GroupComposition) GroupFit {
	if loc == nil || group.IsEmpty() {
		return GroupFit{}
	}
	category := loc.NormalizedCategory()
	var out GroupFit

	typeDelta, typeReason := t.groupTypeDelta(category, group.Type)
	sizeDelta, sizeReason := t.groupSizeDelta(loc, category, group.Size)
	kidsDelta, kidsReason := t.childrenDelta(loc, category, group.ChildrenAges)

	for _, r := range []string{typeReason, sizeReason, kidsReason} {
		if r != "" {
			out.Reasoning = append(out.Reasoning, r)
		}
	}
	out.ScoreAdjustment = clampInt(typeDelta+sizeDelta+kidsDelta, GroupFitMin, GroupFitMax)
	return out
}

func (t *Tables) groupTypeDelta(category string, gt trips.GroupType) (int, string) {
	prefs, ok := t.GroupTypes[normalize(string(gt))]
	if !ok {
		return 0, ""
	}
	switch {
	case contains(prefs.Preferred, category):
		d := clampInt(prefs.PreferredDelta, -groupTypeCap, groupTypeCap)
		return d, fmt.Sprintf("%s suits %s travellers", category, gt)
	case contains(prefs.Avoided, category):
		d := clampInt(prefs.AvoidedDelta, -groupTypeCap, groupTypeCap)
		return d, fmt.Sprintf("%s is a poor fit for %s travellers", category, gt)
	}
	return 0, ""
}

func (t *Tables) groupSizeDelta(loc *places.Location, category string, size int) (int, string) {
	switch {
	case size >= 6:
		d := t.LargeGroup[category]
		if loc.GoodForGroups != nil {
			if *loc.GoodForGroups {
				d += 3
			} else {
				d -= 3
			}
		}
		d = clampInt(d, -groupSizeCap, groupSizeCap)
		if d == 0 {
			return 0, ""
		}
		if d > 0 {
			return d, fmt.Sprintf("handles a large group of %d", size)
		}
		return d, fmt.Sprintf("awkward for a large group of %d", size)
	case size >= 4:
		if loc.GoodForGroups == nil {
			return 0, ""
		}
		if *loc.GoodForGroups {
			return 3, "good for groups"
		}
		return -2, "not suited to groups"
	case size >= 2:
		if loc.GoodForGroups != nil && *loc.GoodForGroups {
			return 2, "good for groups"
		}
	}
	return 0, ""
}

// childrenDelta scores the youngest bracket present. Teenagers get a strictly
// smaller magnitude than young children for the same location.
func (t *Tables) childrenDelta(loc *places.Location, category string, ages []int) (int, string) {
	if len(ages) == 0 {
		return 0, ""
	}
	hasYoung, hasTeen := false, false
	for _, a := range ages {
		switch {
		case a < 0:
		case a <= youngChildMaxAge:
			hasYoung = true
		case a <= teenMaxAge:
			hasTeen = true
		}
	}

	var friendly, adult, flag int
	var who string
	switch {
	case hasYoung:
		friendly, adult, flag, who = 4, -5, 2, "young children"
	case hasTeen:
		friendly, adult, flag, who = 2, -2, 1, "teenagers"
	default:
		return 0, ""
	}

	d := 0
	var reasons []string
	switch {
	case contains(t.ChildFriendly, category):
		d += friendly
		reasons = append(reasons, fmt.Sprintf("%s is fun for %s", category, who))
	case contains(t.AdultOnly, category):
		d += adult
		reasons = append(reasons, fmt.Sprintf("%s is unsuitable for %s", category, who))
	}
	if loc.GoodForChildren != nil {
		if *loc.GoodForChildren {
			d += flag
			reasons = append(reasons, "marked good for children")
		} else {
			d -= flag
			reasons = append(reasons, "marked not good for children")
		}
	}
	return clampInt(d, childrenFitMin, childrenFitMax), strings.Join(reasons, "; ")
}
