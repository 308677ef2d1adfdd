package catalog

import (
	"strings"
	"testing"

	"github.com/yungbote/tripcraft-backend/internal/domain/places"
)

const yamlCatalog = `
locations:
  - id: loc-kinkakuji
    name: Kinkaku-ji
    city: Kyoto
    category: Temple
    lat: 35.0394
    lng: 135.7292
    rating: 4.6
    review_count: 52000
    tags: [outdoor]
    operating_hours:
      periods:
        - open: { day: 1, time: "0900" }
          close: { day: 1, time: "1700" }
  - id: loc-aquarium
    name: Kyoto Aquarium
    city: kyoto
    category: aquarium
    lat: 34.9875
    lng: 135.7519
    price_level: 2
    business_status: operational
`

func TestParseYAML(t *testing.T) {
	entries, err := Parse([]byte(yamlCatalog), "kyoto.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: want=2 got=%d", len(entries))
	}
	locs, errs := Locations(entries)
	if len(errs) != 0 {
		t.Fatalf("unexpected validation errors: %v", errs)
	}

	k := locs[0]
	if k.Category != "temple" || k.ReviewCount != 52000 || k.Rating == nil || *k.Rating != 4.6 {
		t.Fatalf("kinkaku-ji: %+v", k)
	}
	if !k.HasTag("outdoor") {
		t.Fatalf("tags not carried: %s", k.Tags)
	}
	hours := k.Hours()
	if hours == nil || len(hours.Periods) != 1 || hours.Periods[0].Close == nil || hours.Periods[0].Close.Time != "1700" {
		t.Fatalf("hours: %+v", hours)
	}
	if k.BusinessStatus != places.BusinessStatusOperational {
		t.Fatalf("default business status: got=%s", k.BusinessStatus)
	}
	if locs[1].BusinessStatus != places.BusinessStatusOperational || *locs[1].PriceLevel != 2 {
		t.Fatalf("aquarium: %+v", locs[1])
	}

	if got := Cities(locs); len(got) != 1 || got[0] != "kyoto" {
		t.Fatalf("cities: %v", got)
	}
}

func TestParseJSONList(t *testing.T) {
	raw := `[{"id":"a","name":"A","city":"Osaka","category":"market","lat":34.6,"lng":135.5}]`
	entries, err := Parse([]byte(raw), "osaka.JSON")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 1 || entries[0].City != "Osaka" {
		t.Fatalf("entries: %+v", entries)
	}
	if _, err := Parse([]byte(`{"locations": [`), "broken.json"); err == nil {
		t.Fatalf("expected error for truncated json")
	}
	if got, err := Parse([]byte("  \n"), "empty.yaml"); err != nil || got != nil {
		t.Fatalf("empty file: got=%v err=%v", got, err)
	}
}

func TestLocationsReportsInvalidAndDuplicates(t *testing.T) {
	bad := 7
	entries := []Entry{
		{ID: "a", Name: "A", City: "kyoto", Category: "park", Lat: 35, Lng: 135},
		{ID: "a", Name: "A again", City: "kyoto", Category: "park", Lat: 35, Lng: 135},
		{ID: "b", Name: "B", City: "kyoto", Category: "park", Lat: 95, Lng: 135},
		{ID: "c", Name: "C", City: "kyoto", Category: "park", PriceLevel: &bad},
		{ID: "d", Name: "D", City: "kyoto", Category: "park", BusinessStatus: "MAYBE"},
		{Name: "no id"},
	}
	locs, errs := Locations(entries)
	if len(locs) != 1 || locs[0].ID != "a" {
		t.Fatalf("valid rows: %+v", locs)
	}
	if len(errs) != 5 {
		t.Fatalf("errors: want=5 got=%d (%v)", len(errs), errs)
	}
	if !strings.Contains(errs[0].Error(), "duplicate id") {
		t.Fatalf("first error should be the duplicate: %v", errs[0])
	}
	if !strings.Contains(errs[4].Error(), "city is required") {
		t.Fatalf("missing fields not reported: %v", errs[4])
	}
}

func TestBatches(t *testing.T) {
	locs := make([]*places.Location, 5)
	for i := range locs {
		locs[i] = &places.Location{}
	}
	cases := []struct {
		size int
		want []int
	}{
		{2, []int{2, 2, 1}},
		{5, []int{5}},
		{10, []int{5}},
		{0, []int{5}},
	}
	for _, tc := range cases {
		got := Batches(locs, tc.size)
		if len(got) != len(tc.want) {
			t.Fatalf("size %d: want=%d batches got=%d", tc.size, len(tc.want), len(got))
		}
		for i, b := range got {
			if len(b) != tc.want[i] {
				t.Fatalf("size %d batch %d: want=%d got=%d", tc.size, i, tc.want[i], len(b))
			}
		}
	}
	if Batches(nil, 3) != nil {
		t.Fatalf("nil input should give no batches")
	}
}

func TestCitiesAndIDs(t *testing.T) {
	locs := []*places.Location{
		{ID: "a", City: "Kyoto"},
		{ID: " b ", City: "kyoto "},
		{ID: "", City: "Osaka"},
	}
	if got := strings.Join(Cities(locs), ","); got != "kyoto,osaka" {
		t.Fatalf("Cities: want=kyoto,osaka got=%s", got)
	}
	if got := strings.Join(IDs(locs), ","); got != "a,b" {
		t.Fatalf("IDs: want=a,b got=%s", got)
	}
}
