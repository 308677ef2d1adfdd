package trips

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tripcraft-backend/internal/data/dberr"
	domain "github.com/yungbote/tripcraft-backend/internal/domain/trips"
	"github.com/yungbote/tripcraft-backend/internal/pkg/ctxutil"
	"github.com/yungbote/tripcraft-backend/internal/pkg/dbctx"
	"github.com/yungbote/tripcraft-backend/internal/platform/logger"
)

// TripRepo is owner-scoped: every lookup filters on owner_user_id.
type TripRepo interface {
	Create(dbc dbctx.Context, rec *domain.TripRecord) error
	GetByID(dbc dbctx.Context, ownerID, id uuid.UUID) (*domain.TripRecord, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*domain.TripRecord, error)
	Update(dbc dbctx.Context, rec *domain.TripRecord) error
	SoftDelete(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error)
	Restore(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error)
}

type tripRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTripRepo(db *gorm.DB, baseLog *logger.Logger) TripRepo {
	return &tripRepo{db: db, log: baseLog.With("repo", "TripRepo")}
}

func (r *tripRepo) Create(dbc dbctx.Context, rec *domain.TripRecord) error {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).Create(rec).Error; err != nil {
		return dberr.Map("trip.create", err)
	}
	return nil
}

// GetByID returns (nil, nil) when the trip does not exist, is deleted, or
// belongs to someone else.
func (r *tripRepo) GetByID(dbc dbctx.Context, ownerID, id uuid.UUID) (*domain.TripRecord, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.TripRecord
	err := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("id = ? AND owner_user_id = ?", id, ownerID).
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Map("trip.get", err)
	}
	return &out, nil
}

// ListByOwner returns live trips, most recently updated first.
func (r *tripRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID) ([]*domain.TripRecord, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.TripRecord
	if err := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("owner_user_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&out).Error; err != nil {
		return nil, dberr.Map("trip.list", err)
	}
	return out, nil
}

// Update writes the mutable columns of a live trip.
func (r *tripRepo) Update(dbc dbctx.Context, rec *domain.TripRecord) error {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	res := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Model(&domain.TripRecord{}).
		Where("id = ? AND owner_user_id = ?", rec.ID, rec.OwnerUserID).
		Updates(map[string]interface{}{
			"name":         rec.Name,
			"itinerary":    rec.Itinerary,
			"builder_data": rec.BuilderData,
			"day_intros":   rec.DayIntros,
			"updated_at":   rec.UpdatedAt,
		})
	if res.Error != nil {
		return dberr.Map("trip.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return dberr.Map("trip.update", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *tripRepo) SoftDelete(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Where("id = ? AND owner_user_id = ?", id, ownerID).
		Delete(&domain.TripRecord{})
	if res.Error != nil {
		return false, dberr.Map("trip.delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Restore undeletes a soft-deleted trip. False means there was nothing to
// restore (unknown id, or the trip is already live).
func (r *tripRepo) Restore(dbc dbctx.Context, ownerID, id uuid.UUID) (bool, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(ctxutil.Default(dbc.Ctx)).
		Unscoped().
		Model(&domain.TripRecord{}).
		Where("id = ? AND owner_user_id = ? AND deleted_at IS NOT NULL", id, ownerID).
		Updates(map[string]interface{}{
			"deleted_at": nil,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, dberr.Map("trip.restore", res.Error)
	}
	return res.RowsAffected > 0, nil
}
