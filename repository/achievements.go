package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"achievement-review-system/models"
	"achievement-review-system/services"
)

// AchievementRepository is the GORM-backed achievement store.
type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) Create(ctx context.Context, a *models.Achievement) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *AchievementRepository) FindOwned(ctx context.Context, ownerID, id string) (*models.Achievement, error) {
	var achievement models.Achievement
	err := r.DB.WithContext(ctx).
		First(&achievement, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &achievement, nil
}

func (r *AchievementRepository) FindByID(ctx context.Context, id string) (*models.Achievement, error) {
	var achievement models.Achievement
	if err := r.DB.WithContext(ctx).First(&achievement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &achievement, nil
}

func (r *AchievementRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Achievement, error) {
	var items []models.Achievement
	err := r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *AchievementRepository) List(ctx context.Context, filter services.AchievementFilter) ([]models.Achievement, error) {
	query := r.DB.WithContext(ctx).Preload("Owner").Order("created_at DESC")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var items []models.Achievement
	err := query.Find(&items).Error
	return items, err
}

func (r *AchievementRepository) Save(ctx context.Context, a *models.Achievement) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

func (r *AchievementRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&models.Achievement{}, "id = ?", id).Error
}

func (r *AchievementRepository) CountByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	var rows []models.CategoryCount
	err := r.DB.WithContext(ctx).
		Model(&models.Achievement{}).
		Select("category, count(*) as count").
		Group("category").
		Scan(&rows).Error
	return rows, err
}

func (r *AchievementRepository) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	var rows []models.StatusCount
	err := r.DB.WithContext(ctx).
		Model(&models.Achievement{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *AchievementRepository) CountByMonth(ctx context.Context) ([]models.MonthCount, error) {
	var rows []models.MonthCount
	err := r.DB.WithContext(ctx).
		Model(&models.Achievement{}).
		Select("to_char(created_at, 'YYYY-MM') as month, count(*) as count").
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *AchievementRepository) ExistsByCertificateKey(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.Achievement{}).
		Where("certificate_key = ?", key).
		Count(&count).Error
	return count > 0, err
}
