package trips

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StoredTrip is the serializable trip document handed to clients.
type StoredTrip struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Itinerary   Itinerary         `json:"itinerary"`
	BuilderData TripBuilderData   `json:"builderData"`
	DayIntros   map[string]string `json:"dayIntros,omitempty"`
}

// TripRecord is the persisted row behind a StoredTrip.
type TripRecord struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerUserID uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_user_id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Itinerary   datatypes.JSON `gorm:"column:itinerary;type:jsonb" json:"itinerary"`
	BuilderData datatypes.JSON `gorm:"column:builder_data;type:jsonb" json:"builder_data"`
	DayIntros   datatypes.JSON `gorm:"column:day_intros;type:jsonb" json:"day_intros"`
	CreatedAt   time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TripRecord) TableName() string { return "trip" }

func (r *TripRecord) ToStoredTrip() (StoredTrip, error) {
	out := StoredTrip{
		ID:        r.ID.String(),
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if len(r.Itinerary) > 0 {
		if err := json.Unmarshal(r.Itinerary, &out.Itinerary); err != nil {
			return StoredTrip{}, fmt.Errorf("decode itinerary: %w", err)
		}
	}
	if len(r.BuilderData) > 0 {
		if err := json.Unmarshal(r.BuilderData, &out.BuilderData); err != nil {
			return StoredTrip{}, fmt.Errorf("decode builder data: %w", err)
		}
	}
	if len(r.DayIntros) > 0 {
		if err := json.Unmarshal(r.DayIntros, &out.DayIntros); err != nil {
			return StoredTrip{}, fmt.Errorf("decode day intros: %w", err)
		}
	}
	return out, nil
}

func NewTripRecord(ownerUserID uuid.UUID, trip StoredTrip) (*TripRecord, error) {
	id, err := uuid.Parse(trip.ID)
	if err != nil {
		return nil, fmt.Errorf("trip id %q: %w", trip.ID, err)
	}
	itin, err := json.Marshal(trip.Itinerary)
	if err != nil {
		return nil, err
	}
	builder, err := json.Marshal(trip.BuilderData)
	if err != nil {
		return nil, err
	}
	intros := []byte("{}")
	if len(trip.DayIntros) > 0 {
		if intros, err = json.Marshal(trip.DayIntros); err != nil {
			return nil, err
		}
	}
	return &TripRecord{
		ID:          id,
		OwnerUserID: ownerUserID,
		Name:        trip.Name,
		Itinerary:   datatypes.JSON(itin),
		BuilderData: datatypes.JSON(builder),
		DayIntros:   datatypes.JSON(intros),
		CreatedAt:   trip.CreatedAt,
		UpdatedAt:   trip.UpdatedAt,
	}, nil
}
