package services

import (
	"context"

	dbm "nearby/internal/models/db_models"
	"nearby/internal/models/response_models"
	"nearby/internal/repositories"
	"nearby/pkg/utils"
)

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context) (*response_models.AdminDashboard, error)
}

type DashboardService struct {
	dashboardRepo repositories.DashboardRepository
}

func NewDashboardService(dashboardRepo repositories.DashboardRepository) DashboardServiceInterface {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

func (d *DashboardService) GetDashboard(ctx context.Context) (*response_models.AdminDashboard, error) {
	var (
		out = &response_models.AdminDashboard{}
		err error
	)

	counters := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&out.Places, d.dashboardRepo.CountPlaces},
		{&out.VisitedPlaces, d.dashboardRepo.CountVisitedPlaces},
		{&out.Journeys, d.dashboardRepo.CountJourneys},
		{&out.Accounts, d.dashboardRepo.CountAccounts},
		{&out.PendingDiscovered, d.pending(&dbm.DiscoveredEvent{})},
		{&out.PendingCommunity, d.pending(&dbm.CommunityEvent{})},
		{&out.PendingSuggestions, d.pending(&dbm.CommunitySuggestion{})},
	}
	for _, c := range counters {
		if *c.dst, err = c.fn(ctx); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}
	return out, nil
}

func (d *DashboardService) pending(model interface{}) func(context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) {
		return d.dashboardRepo.CountByModerationStatus(ctx, model, dbm.ModerationPending)
	}
}
