package scoring

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const scoringTablesEnv = "SCORING_TABLES_YAML"

// DefaultVisitMinutesFallback applies to categories without a visit_minutes row.
const DefaultVisitMinutesFallback = 60

//go:embed tables.yaml
var tablesFS embed.FS

type Environment string

const (
	EnvironmentIndoor  Environment = "indoor"
	EnvironmentOutdoor Environment = "outdoor"
	EnvironmentMixed   Environment = "mixed"
)

// Tables holds every static lookup the scorers consult.
type Tables struct {
	Environment   map[string]Environment    `yaml:"environment"`
	Interests     map[string][]string       `yaml:"interests"`
	GroupTypes    map[string]GroupTypePrefs `yaml:"group_types"`
	LargeGroup    map[string]int            `yaml:"large_group"`
	ChildFriendly []string                  `yaml:"child_friendly"`
	AdultOnly     []string                  `yaml:"adult_only"`
	TimeSlots     map[string][]string       `yaml:"time_slots"`
	VisitMinutes  map[string]int            `yaml:"visit_minutes"`
}

type GroupTypePrefs struct {
	Preferred      []string `yaml:"preferred"`
	PreferredDelta int      `yaml:"preferred_delta"`
	Avoided        []string `yaml:"avoided"`
	AvoidedDelta   int      `yaml:"avoided_delta"`
}

// minimal set used when the YAML cannot be read
var fallbackTables = Tables{
	Environment: map[string]Environment{
		"museum": EnvironmentIndoor, "restaurant": EnvironmentIndoor, "shopping": EnvironmentIndoor,
		"park": EnvironmentOutdoor, "garden": EnvironmentOutdoor, "shrine": EnvironmentOutdoor,
		"viewpoint": EnvironmentOutdoor, "nature": EnvironmentOutdoor,
		"landmark": EnvironmentMixed, "market": EnvironmentMixed, "wellness": EnvironmentMixed,
	},
	GroupTypes: map[string]GroupTypePrefs{
		"family": {Preferred: []string{"park", "aquarium", "zoo", "entertainment", "museum"}, PreferredDelta: 4, Avoided: []string{"bar", "nightlife"}, AvoidedDelta: -4},
	},
	LargeGroup:    map[string]int{"restaurant": 3, "shrine": -2},
	ChildFriendly: []string{"park", "aquarium", "zoo", "entertainment"},
	AdultOnly:     []string{"bar", "nightlife"},
}

var (
	tablesOnce    sync.Once
	defaultTables *Tables
	tablesErr     error
)

// DefaultTables loads SCORING_TABLES_YAML if set, else the embedded file.
// On failure it serves the compiled-in fallback; TablesLoadError reports why.
func DefaultTables() *Tables {
	tablesOnce.Do(func() {
		data, err := readTables()
		if err == nil {
			defaultTables, err = ParseTables(data)
		}
		if err != nil {
			tablesErr = err
			fb := fallbackTables
			defaultTables = &fb
		}
	})
	return defaultTables
}

func TablesLoadError() error {
	DefaultTables()
	return tablesErr
}

func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse scoring tables: %w", err)
	}
	if len(t.Environment) == 0 {
		return nil, fmt.Errorf("scoring tables: environment table is empty")
	}
	for cat, env := range t.Environment {
		switch env {
		case EnvironmentIndoor, EnvironmentOutdoor, EnvironmentMixed:
		default:
			return nil, fmt.Errorf("scoring tables: category %q has unknown environment %q", cat, env)
		}
	}
	return &t, nil
}

func readTables() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(scoringTablesEnv)); path != "" {
		return os.ReadFile(path)
	}
	return tablesFS.ReadFile("tables.yaml")
}

// DefaultVisitMinutes is the category default visit length.
func (t *Tables) DefaultVisitMinutes(category string) int {
	if m, ok := t.VisitMinutes[normalize(category)]; ok && m > 0 {
		return m
	}
	return DefaultVisitMinutesFallback
}

// KnownCategory reports whether category has an environment or visit_minutes row.
func (t *Tables) KnownCategory(category string) bool {
	c := normalize(category)
	if c == "" {
		return false
	}
	if _, ok := t.Environment[c]; ok {
		return true
	}
	_, ok := t.VisitMinutes[c]
	return ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if normalize(x) == v {
			return true
		}
	}
	return false
}
