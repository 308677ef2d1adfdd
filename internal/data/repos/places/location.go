package places

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/tripcraft-backend/internal/data/dberr"
	domain "github.com/yungbote/tripcraft-backend/internal/domain/places"
	"github.com/yungbote/tripcraft-backend/internal/pkg/ctxutil"
	"github.com/yungbote/tripcraft-backend/internal/pkg/dbctx"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

type CityQuery struct {
	Limit          int
	ExcludeIDs     []string
	RequirePlaceID bool
}

type LocationRepo interface {
	GetByID(dbc dbctx.Context, id string) (*domain.Location, error)
	FetchByCity(dbc dbctx.Context, city string, q CityQuery) ([]*domain.Location, error)
	Upsert(dbc dbctx.Context, locs []*domain.Location) (int64, error)
	ListCities(dbc dbctx.Context) ([]string, error)
}

type locationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLocationRepo(db *gorm.DB, baseLog *logger.Logger) LocationRepo {
	return &locationRepo{db: db, log: baseLog.With("repo", "LocationRepo")}
}

// GetByID returns (nil, nil) when the id is unknown.
func (r *locationRepo) GetByID(dbc dbctx.Context, id string) (*domain.Location, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.Location
	err := txx.WithContext(ctxutil.Default(dbc.Ctx)).Where("id = ?", id).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Map("location.get", err)
	}
	return &out, nil
}

// FetchByCity matches city case-insensitively and skips permanently closed
// rows. Better-reviewed rows come first so a Limit keeps the strongest.
func (r *locationRepo) FetchByCity(dbc dbctx.Context, city string, q CityQuery) ([]*domain.Location, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Location
	city = strings.TrimSpace(city)
	if city == "" {
		return out, nil
	}

	stmt := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("LOWER(city) = LOWER(?)", city).
		Where("COALESCE(business_status, '') <> ?", domain.BusinessStatusClosedPermanently)
	if len(q.ExcludeIDs) > 0 {
		stmt = stmt.Where("id NOT IN ?", q.ExcludeIDs)
	}
	if q.RequirePlaceID {
		stmt = stmt.Where("COALESCE(place_id, '') <> ''")
	}
	if q.Limit > 0 {
		stmt = stmt.Limit(q.Limit)
	}
	if err := stmt.Order("review_count DESC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, dberr.Map("location.fetch_by_city", err)
	}
	return out, nil
}

// Upsert inserts or refreshes rows by id and returns the affected count.
func (r *locationRepo) Upsert(dbc dbctx.Context, locs []*domain.Location) (int64, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if len(locs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	for _, l := range locs {
		if l.CreatedAt.IsZero() {
			l.CreatedAt = now
		}
		l.UpdatedAt = now
	}
	res := txx.WithContext(ctxutil.Default(dbc.Ctx)).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"city",
			"region",
			"prefecture",
			"neighborhood",
			"category",
			"latitude",
			"longitude",
			"rating",
			"review_count",
			"price_level",
			"wheelchair_accessible",
			"dietary_options",
			"meal_options",
			"good_for_groups",
			"good_for_children",
			"tags",
			"operating_hours",
			"recommended_visit_minutes",
			"business_status",
			"place_id",
			"updated_at",
		}),
	}).Create(&locs)
	if res.Error != nil {
		return 0, dberr.Map("location.upsert", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *locationRepo) ListCities(dbc dbctx.Context) ([]string, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []string
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Model(&domain.Location{}).
		Distinct("city").
		Order("city ASC").
		Pluck("city", &out).Error; err != nil {
		return nil, dberr.Map("location.list_cities", err)
	}
	return out, nil
}
