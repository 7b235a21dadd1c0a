package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatra/internal/infra"
	"yatra/internal/models/db_models"
	"yatra/pkg/utils"
)

type ItineraryRepository interface {
	CreateItinerary(ctx context.Context, record *db_models.Itinerary) error
	GetItineraryByID(ctx context.Context, id uuid.UUID) (*db_models.Itinerary, error)
	// MergeProvider sets providers[key] = payload, keeping the other keys.
	MergeProvider(ctx context.Context, id uuid.UUID, key string, payload json.RawMessage) error
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

type itineraryRepository struct {
	db *gorm.DB
}

func (r *itineraryRepository) CreateItinerary(ctx context.Context, record *db_models.Itinerary) error {
	if record.Providers == "" {
		record.Providers = "{}"
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
}

func (r *itineraryRepository) GetItineraryByID(ctx context.Context, id uuid.UUID) (*db_models.Itinerary, error) {
	var record db_models.Itinerary
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *itineraryRepository) MergeProvider(ctx context.Context, id uuid.UUID, key string, payload json.RawMessage) error {
	tx, err := infra.StartTransaction(r.db.WithContext(ctx))
	if err != nil {
		return err
	}
	return infra.ReleaseTransaction(tx, mergeProvider(tx, id, key, payload))
}

func mergeProvider(tx *gorm.DB, id uuid.UUID, key string, payload json.RawMessage) error {
	var record db_models.Itinerary
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrItineraryNotFound
		}
		return err
	}

	providers := map[string]json.RawMessage{}
	if record.Providers != "" {
		if err := json.Unmarshal([]byte(record.Providers), &providers); err != nil {
			return fmt.Errorf("decode providers of %s: %w", id, err)
		}
	}
	if providers == nil {
		providers = map[string]json.RawMessage{}
	}
	providers[key] = payload

	encoded, err := json.Marshal(providers)
	if err != nil {
		return err
	}

	return tx.Model(&db_models.Itinerary{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"providers":  string(encoded),
			"updated_at": utils.NowUnixSeconds(),
		}).Error
}
