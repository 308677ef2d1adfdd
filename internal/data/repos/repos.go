package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/tripcraft-backend/internal/data/repos/places"
	"github.com/yungbote/tripcraft-backend/internal/data/repos/trips"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

type LocationRepo = places.LocationRepo
type CityQuery = places.CityQuery

type TripRepo = trips.TripRepo
type HistoryRepo = trips.HistoryRepo

func NewLocationRepo(db *gorm.DB, baseLog *logger.Logger) LocationRepo {
	return places.NewLocationRepo(db, baseLog)
}

func NewTripRepo(db *gorm.DB, baseLog *logger.Logger) TripRepo {
	return trips.NewTripRepo(db, baseLog)
}

func NewHistoryRepo(db *gorm.DB, baseLog *logger.Logger) HistoryRepo {
	return trips.NewHistoryRepo(db, baseLog)
}
