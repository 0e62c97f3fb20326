package services

import (
	"context"

	"achievement-review-system/models"
)

// AnalyticsService answers the admin dashboard's three grouped counts. Pure
// reads, snapshot-at-query-time.
type AnalyticsService struct {
	store AchievementStore
}

func NewAnalyticsService(store AchievementStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

func (s *AnalyticsService) Overview(ctx context.Context) (*models.AnalyticsOverview, error) {
	byCategory, err := s.store.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.store.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	monthly, err := s.store.CountByMonth(ctx)
	if err != nil {
		return nil, err
	}
	return &models.AnalyticsOverview{
		ByCategory: byCategory,
		ByStatus:   byStatus,
		Monthly:    monthly,
	}, nil
}
