package routing

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/tripcraft-backend/internal/domain/geo"
)

const cityTableEnv = "ROUTING_CITIES_YAML"

// DefaultInterCityMinutes is returned for city pairs missing from the table.
const DefaultInterCityMinutes = 120

//go:embed cities.yaml
var cityTableFS embed.FS

// used when both the override and the embedded file fail to load
var fallbackRoutes = map[[2]string]int{
	{"kyoto", "osaka"}:    30,
	{"kyoto", "nara"}:     45,
	{"osaka", "nara"}:     40,
	{"osaka", "kobe"}:     25,
	{"tokyo", "yokohama"}: 30,
	{"tokyo", "kyoto"}:    135,
	{"tokyo", "osaka"}:    150,
}

type yamlCityTable struct {
	Version        int                        `yaml:"version"`
	DefaultMinutes int                        `yaml:"default_minutes"`
	Cities         map[string]geo.Coordinates `yaml:"cities"`
	Routes         []yamlRoute                `yaml:"routes"`
}

type yamlRoute struct {
	From    string `yaml:"from"`
	To      string `yaml:"to"`
	Minutes int    `yaml:"minutes"`
}

// CityTable is the static named-city lookup used for trip-duration estimates.
type CityTable struct {
	defaultMinutes int
	centers        map[string]geo.Coordinates
	minutes        map[[2]string]int
}

var (
	tableOnce    sync.Once
	defaultTable *CityTable
)

// DefaultCityTable loads the table once: ROUTING_CITIES_YAML if set, else the
// embedded file, else the compiled-in fallback routes.
func DefaultCityTable() *CityTable {
	tableOnce.Do(func() {
		data, err := readCityTable()
		if err == nil {
			defaultTable, err = ParseCityTable(data)
		}
		if err != nil || defaultTable == nil {
			defaultTable = fallbackCityTable()
		}
	})
	return defaultTable
}

func ParseCityTable(data []byte) (*CityTable, error) {
	var raw yamlCityTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse city table: %w", err)
	}
	if len(raw.Routes) == 0 {
		return nil, errors.New("city table has no routes")
	}
	t := &CityTable{
		defaultMinutes: raw.DefaultMinutes,
		centers:        make(map[string]geo.Coordinates, len(raw.Cities)),
		minutes:        make(map[[2]string]int, len(raw.Routes)),
	}
	if t.defaultMinutes <= 0 {
		t.defaultMinutes = DefaultInterCityMinutes
	}
	for name, c := range raw.Cities {
		t.centers[normalizeCity(name)] = c
	}
	for i, r := range raw.Routes {
		from, to := normalizeCity(r.From), normalizeCity(r.To)
		if from == "" || to == "" || r.Minutes <= 0 {
			return nil, fmt.Errorf("city table route %d: invalid entry %+v", i, r)
		}
		t.minutes[pairKey(from, to)] = r.Minutes
	}
	return t, nil
}

// LookupTravelMinutes reports whether the pair is known. The same city is
// always known and costs zero.
func (t *CityTable) LookupTravelMinutes(from, to string) (int, bool) {
	a, b := normalizeCity(from), normalizeCity(to)
	if a == "" || b == "" {
		return 0, false
	}
	if a == b {
		return 0, true
	}
	m, ok := t.minutes[pairKey(a, b)]
	return m, ok
}

func (t *CityTable) TravelMinutes(from, to string) int {
	if m, ok := t.LookupTravelMinutes(from, to); ok {
		return m
	}
	return t.defaultMinutes
}

func (t *CityTable) CityCenter(city string) (geo.Coordinates, bool) {
	c, ok := t.centers[normalizeCity(city)]
	return c, ok
}

// TravelMinutes uses the default table.
func TravelMinutes(from, to string) int {
	return DefaultCityTable().TravelMinutes(from, to)
}

func LookupTravelMinutes(from, to string) (int, bool) {
	return DefaultCityTable().LookupTravelMinutes(from, to)
}

func CityCenter(city string) (geo.Coordinates, bool) {
	return DefaultCityTable().CityCenter(city)
}

func readCityTable() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(cityTableEnv)); path != "" {
		return os.ReadFile(path)
	}
	return cityTableFS.ReadFile("cities.yaml")
}

func fallbackCityTable() *CityTable {
	t := &CityTable{
		defaultMinutes: DefaultInterCityMinutes,
		centers:        map[string]geo.Coordinates{},
		minutes:        make(map[[2]string]int, len(fallbackRoutes)),
	}
	for k, v := range fallbackRoutes {
		t.minutes[pairKey(k[0], k[1])] = v
	}
	return t
}

func normalizeCity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// pairKey orders the names so lookups are symmetric.
func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
