package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbm "nearby/internal/models/db_models"
)

type JourneyRepository interface {
	CreateJourney(ctx context.Context, journey *dbm.Journey) (uuid.UUID, error)
	ReplaceJourney(ctx context.Context, journey *dbm.Journey) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetDetailsOfJourneyById(ctx context.Context, journeyId string) (*dbm.Journey, error)
	ListPublished(ctx context.Context, page, pageSize int) ([]dbm.Journey, error)
	ListAllPublished(ctx context.Context) ([]dbm.Journey, error)

	SaveForAccount(ctx context.Context, accountID, journeyID uuid.UUID) error
	UnsaveForAccount(ctx context.Context, accountID, journeyID uuid.UUID) error
	ListSavedByAccount(ctx context.Context, accountID uuid.UUID) ([]dbm.Journey, error)
}

type journeyRepository struct {
	db *gorm.DB
}

func NewJourneyRepository(db *gorm.DB) JourneyRepository {
	return &journeyRepository{db: db}
}

func (r *journeyRepository) CreateJourney(ctx context.Context, journey *dbm.Journey) (uuid.UUID, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stops := journey.Stops
		journey.Stops = nil
		if err := tx.Create(journey).Error; err != nil {
			return err
		}
		for i := range stops {
			stops[i].JourneyID = journey.ID
		}
		if len(stops) > 0 {
			if err := tx.Omit("Place").Create(&stops).Error; err != nil {
				return err
			}
		}
		journey.Stops = stops
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return journey.ID, nil
}

// ReplaceJourney updates the journey row and rewrites its stops.
func (r *journeyRepository) ReplaceJourney(ctx context.Context, journey *dbm.Journey) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stops := journey.Stops
		journey.Stops = nil
		defer func() { journey.Stops = stops }()

		if err := tx.Omit(clause.Associations).Save(journey).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("journey_id = ?", journey.ID).Delete(&dbm.JourneyStop{}).Error; err != nil {
			return err
		}

		for i := range stops {
			stops[i].ID = uuid.Nil
			stops[i].JourneyID = journey.ID
		}
		if len(stops) == 0 {
			return nil
		}
		return tx.Omit("Place").Create(&stops).Error
	})
}

func (r *journeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("journey_id = ?", id).Delete(&dbm.JourneyStop{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("journey_id = ?", id).Delete(&dbm.SavedJourney{}).Error; err != nil {
			return err
		}
		return tx.Delete(&dbm.Journey{}, "id = ?", id).Error
	})
}

func (r *journeyRepository) GetDetailsOfJourneyById(ctx context.Context, journeyId string) (*dbm.Journey, error) {

	var journey dbm.Journey
	err := r.db.WithContext(ctx).
		Where("id = ?", journeyId).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Stops.Place").
		First(&journey).Error

	if err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &journey, nil
}

func (r *journeyRepository) ListPublished(ctx context.Context, page, pageSize int) ([]dbm.Journey, error) {
	var journeys []dbm.Journey
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&journeys).Error
	if err != nil {
		return nil, err
	}
	return journeys, nil
}

func (r *journeyRepository) ListAllPublished(ctx context.Context) ([]dbm.Journey, error) {
	var journeys []dbm.Journey
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at ASC").
		Find(&journeys).Error
	if err != nil {
		return nil, err
	}
	return journeys, nil
}

func (r *journeyRepository) SaveForAccount(ctx context.Context, accountID, journeyID uuid.UUID) error {
	row := dbm.SavedJourney{AccountID: accountID, JourneyID: journeyID}
	return r.db.WithContext(ctx).
		Omit("Journey").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

func (r *journeyRepository) UnsaveForAccount(ctx context.Context, accountID, journeyID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("account_id = ? AND journey_id = ?", accountID, journeyID).
		Delete(&dbm.SavedJourney{}).Error
}

func (r *journeyRepository) ListSavedByAccount(ctx context.Context, accountID uuid.UUID) ([]dbm.Journey, error) {
	var journeys []dbm.Journey
	err := r.db.WithContext(ctx).
		Joins("JOIN saved_journeys ON saved_journeys.journey_id = journeys.id").
		Where("saved_journeys.account_id = ? AND saved_journeys.deleted_at IS NULL", accountID).
		Order("saved_journeys.created_at DESC").
		Find(&journeys).Error
	if err != nil {
		return nil, err
	}
	return journeys, nil
}
