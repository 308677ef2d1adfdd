package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/domain/trips"
)

func SeedLocation(tb testing.TB, ctx context.Context, tx *gorm.DB, id, city, category string) *places.Location {
	tb.Helper()
	rating := 4.2
	l := &places.Location{
		ID:             id,
		Name:           id,
		City:           city,
		Category:       category,
		Latitude:       35.0,
		Longitude:      135.75,
		Rating:         &rating,
		ReviewCount:    100,
		Tags:           places.StringList(category),
		BusinessStatus: places.BusinessStatusOperational,
		PlaceID:        "place-" + id,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed location: %v", err)
	}
	return l
}

func SeedTrip(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) *trips.TripRecord {
	tb.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	rec, err := trips.NewTripRecord(ownerID, trips.StoredTrip{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Itinerary: trips.Itinerary{Days: []trips.Day{{
			ID:   "day-1",
			City: "kyoto",
			Activities: []trips.Activity{{
				ID:    "act-1",
				Kind:  trips.ActivityKindPlace,
				Title: "Fushimi Inari",
				Place: &trips.PlaceDetails{LocationID: "fushimi", Tags: []string{"shrine"}},
			}},
		}}},
	})
	if err != nil {
		tb.Fatalf("build trip: %v", err)
	}
	if err := tx.WithContext(ctx).Create(rec).Error; err != nil {
		tb.Fatalf("seed trip: %v", err)
	}
	return rec
}
