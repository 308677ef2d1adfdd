package trips

type BudgetLevel string

const (
	BudgetLevelBudget   BudgetLevel = "budget"
	BudgetLevelModerate BudgetLevel = "moderate"
	BudgetLevelLuxury   BudgetLevel = "luxury"
)

type GroupType string

const (
	GroupTypeSolo     GroupType = "solo"
	GroupTypeCouple   GroupType = "couple"
	GroupTypeFamily   GroupType = "family"
	GroupTypeFriends  GroupType = "friends"
	GroupTypeBusiness GroupType = "business"
)

// TripBuilderData is the traveller's trip-level preferences.
type TripBuilderData struct {
	Interests     []string            `json:"interests,omitempty"`
	TravelStyle   string              `json:"style,omitempty"`
	Budget        *Budget             `json:"budget,omitempty"`
	Accessibility *Accessibility      `json:"accessibility,omitempty"`
	Weather       *WeatherPreferences `json:"weatherPreferences,omitempty"`
	Group         *GroupComposition   `json:"group,omitempty"`
	Cities        []string            `json:"cities,omitempty"`
	Regions       []string            `json:"regions,omitempty"`
	StartDate     string              `json:"startDate,omitempty"`
	EndDate       string              `json:"endDate,omitempty"`
}

type Budget struct {
	Level  BudgetLevel `json:"level,omitempty"`
	Total  *float64    `json:"total,omitempty"`
	PerDay *float64    `json:"perDay,omitempty"`
}

type Accessibility struct {
	Wheelchair     bool     `json:"wheelchairAccessible,omitempty"`
	MobilityLimits bool     `json:"mobility,omitempty"`
	Dietary        []string `json:"dietary,omitempty"`
}

type WeatherPreferences struct {
	PreferIndoorOnRain bool `json:"preferIndoorAlternatives,omitempty"`
}

type GroupComposition struct {
	Type         GroupType `json:"type,omitempty"`
	Size         int       `json:"size,omitempty"`
	ChildrenAges []int     `json:"childrenAges,omitempty"`
}

// IsEmpty reports a composition carrying no signal at all.
func (g *GroupComposition) IsEmpty() bool {
	return g == nil || (g.Type == "" && g.Size == 0 && len(g.ChildrenAges) == 0)
}
