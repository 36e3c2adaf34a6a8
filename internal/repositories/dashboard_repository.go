package repositories

import (
	"context"

	"gorm.io/gorm"

	dbm "nearby/internal/models/db_models"
)

type DashboardRepository interface {
	CountPlaces(ctx context.Context) (int64, error)
	CountVisitedPlaces(ctx context.Context) (int64, error)
	CountJourneys(ctx context.Context) (int64, error)
	CountAccounts(ctx context.Context) (int64, error)
	CountByModerationStatus(ctx context.Context, model interface{}, status dbm.ModerationStatus) (int64, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) count(ctx context.Context, model interface{}, where string, args ...interface{}) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountPlaces(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.Place{}, "")
}

func (r *dashboardRepository) CountVisitedPlaces(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.Place{}, "visited = ?", true)
}

func (r *dashboardRepository) CountJourneys(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.Journey{}, "")
}

func (r *dashboardRepository) CountAccounts(ctx context.Context) (int64, error) {
	return r.count(ctx, &dbm.Account{}, "")
}

func (r *dashboardRepository) CountByModerationStatus(ctx context.Context, model interface{}, status dbm.ModerationStatus) (int64, error) {
	return r.count(ctx, model, "moderation_status = ?", status)
}
