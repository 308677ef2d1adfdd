package places

import (
	"context"
	"testing"

	"github.com/yungbote/tripcraft-backend/internal/data/repos/testutil"
	domain "github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/pkg/dbctx"
)

func TestLocationRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewLocationRepo(db, testutil.Logger(t))

	testutil.SeedLocation(t, ctx, tx, "repo-fushimi", "Kyoto", "shrine")
	testutil.SeedLocation(t, ctx, tx, "repo-kinkakuji", "kyoto", "temple")
	testutil.SeedLocation(t, ctx, tx, "repo-nishiki", "KYOTO", "market")
	closed := testutil.SeedLocation(t, ctx, tx, "repo-closed", "Kyoto", "cafe")
	noPlace := testutil.SeedLocation(t, ctx, tx, "repo-noplace", "Kyoto", "park")
	testutil.SeedLocation(t, ctx, tx, "repo-dotonbori", "Osaka", "market")

	if err := tx.Model(closed).Update("business_status", domain.BusinessStatusClosedPermanently).Error; err != nil {
		t.Fatalf("close location: %v", err)
	}
	if err := tx.Model(noPlace).Update("place_id", "").Error; err != nil {
		t.Fatalf("clear place id: %v", err)
	}

	got, err := repo.GetByID(dbc, "repo-fushimi")
	if err != nil || got == nil || got.City != "Kyoto" {
		t.Fatalf("GetByID: err=%v got=%v", err, got)
	}
	if tags := got.TagList(); len(tags) != 1 || tags[0] != "shrine" {
		t.Fatalf("GetByID tags: %v", tags)
	}
	if missing, err := repo.GetByID(dbc, "repo-missing"); err != nil || missing != nil {
		t.Fatalf("GetByID missing: err=%v got=%v", err, missing)
	}

	rows, err := repo.FetchByCity(dbc, "kYoTo", CityQuery{})
	if err != nil || len(rows) != 4 {
		t.Fatalf("FetchByCity: err=%v len=%d", err, len(rows))
	}
	for _, r := range rows {
		if r.ID == "repo-closed" {
			t.Fatalf("FetchByCity returned a permanently closed location")
		}
	}

	rows, err = repo.FetchByCity(dbc, "Kyoto", CityQuery{ExcludeIDs: []string{"repo-fushimi", "repo-kinkakuji"}, RequirePlaceID: true})
	if err != nil || len(rows) != 1 || rows[0].ID != "repo-nishiki" {
		t.Fatalf("FetchByCity filtered: err=%v rows=%v", err, rows)
	}
	if rows, err := repo.FetchByCity(dbc, "Kyoto", CityQuery{Limit: 2}); err != nil || len(rows) != 2 {
		t.Fatalf("FetchByCity limit: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.FetchByCity(dbc, "  ", CityQuery{}); err != nil || len(rows) != 0 {
		t.Fatalf("FetchByCity blank: err=%v len=%d", err, len(rows))
	}

	rating := 4.9
	n, err := repo.Upsert(dbc, []*domain.Location{
		{ID: "repo-fushimi", Name: "Fushimi Inari Taisha", City: "Kyoto", Category: "shrine", Rating: &rating, ReviewCount: 9000},
		{ID: "repo-new", Name: "Philosopher's Path", City: "Kyoto", Category: "nature"},
	})
	if err != nil || n < 2 {
		t.Fatalf("Upsert: err=%v n=%d", err, n)
	}
	got, _ = repo.GetByID(dbc, "repo-fushimi")
	if got.Name != "Fushimi Inari Taisha" || got.ReviewCount != 9000 {
		t.Fatalf("Upsert did not refresh: %+v", got)
	}

	cities, err := repo.ListCities(dbc)
	if err != nil {
		t.Fatalf("ListCities: %v", err)
	}
	has := map[string]bool{}
	for _, c := range cities {
		has[c] = true
	}
	if !has["Kyoto"] || !has["Osaka"] {
		t.Fatalf("ListCities: %v", cities)
	}
}
