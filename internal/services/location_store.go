package services

import (
	"context"

	"github.com/yungbote/tripcraft-backend/internal/data/repos"
	"github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/modules/replacement"
	"github.com/yungbote/tripcraft-backend/internal/pkg/dbctx"
)

// repoLocationStore adapts LocationRepo to the finder's store contract.
type repoLocationStore struct {
	repo repos.LocationRepo
}

func NewLocationStore(repo repos.LocationRepo) replacement.LocationStore {
	return &repoLocationStore{repo: repo}
}

func (s *repoLocationStore) GetLocation(ctx context.Context, id string) (*places.Location, error) {
	return s.repo.GetByID(dbctx.Context{Ctx: ctx}, id)
}

func (s *repoLocationStore) FetchLocationsByCity(ctx context.Context, city string, q replacement.Query) ([]*places.Location, error) {
	return s.repo.FetchByCity(dbctx.Context{Ctx: ctx}, city, repos.CityQuery{
		Limit:          q.Limit,
		ExcludeIDs:     q.ExcludeIDs,
		RequirePlaceID: q.RequirePlaceID,
	})
}
