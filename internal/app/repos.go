package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/tripcraft-backend/internal/data/repos"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

type Repos struct {
	Location repos.LocationRepo
	Trip     repos.TripRepo
	History  repos.HistoryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Location: repos.NewLocationRepo(db, log),
		Trip:     repos.NewTripRepo(db, log),
		History:  repos.NewHistoryRepo(db, log),
	}
}
