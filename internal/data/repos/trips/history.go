package trips

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/tripcraft-backend/internal/data/dberr"
	domain "github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/pkg/ctxutil"
	"github.com/yungbote/tripcraft-backend/internal/pkg/dbctx"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

type HistoryRepo interface {
	Get(dbc dbctx.Context, tripID uuid.UUID) (*domain.TripHistoryRecord, error)
	Save(dbc dbctx.Context, rec *domain.TripHistoryRecord) error
}

type historyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHistoryRepo(db *gorm.DB, baseLog *logger.Logger) HistoryRepo {
	return &historyRepo{db: db, log: baseLog.With("repo", "HistoryRepo")}
}

// Get returns (nil, nil) for a trip without history.
func (r *historyRepo) Get(dbc dbctx.Context, tripID uuid.UUID) (*domain.TripHistoryRecord, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.TripHistoryRecord
	err := txx.WithContext(ctxutil.Default(dbc.Ctx)).Where("trip_id = ?", tripID).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Map("history.get", err)
	}
	return &out, nil
}

// Save replaces the trip's history row.
func (r *historyRepo) Save(dbc dbctx.Context, rec *domain.TripHistoryRecord) error {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	err := txx.WithContext(ctxutil.Default(dbc.Ctx)).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "trip_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"entries", "current_index", "updated_at"}),
	}).Create(rec).Error
	if err != nil {
		return dberr.Map("history.save", err)
	}
	return nil
}
