package services

import (
	"context"

	"achievement-review-system/models"
)

// UserStore is the credential store behind registration, login and token
// resolution.
type UserStore interface {
	// Create persists a new user. Returns ErrDuplicateEmail if the email is
	// already registered.
	Create(ctx context.Context, u *models.User) error
	// FindByEmail returns ErrNotFound for unknown emails.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByID returns ErrNotFound for unknown ids.
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// AchievementFilter narrows the admin listing. Zero values mean unfiltered.
type AchievementFilter struct {
	Category models.Category
	Status   models.Status
}

// AchievementStore is the document store behind the lifecycle engine and the
// analytics aggregator.
type AchievementStore interface {
	Create(ctx context.Context, a *models.Achievement) error
	// FindOwned looks a record up by id AND owner. A record owned by someone
	// else yields the same ErrNotFound as a missing id.
	FindOwned(ctx context.Context, ownerID, id string) (*models.Achievement, error)
	// FindByID looks a record up by id alone (admin review path).
	FindByID(ctx context.Context, id string) (*models.Achievement, error)
	// ListByOwner returns the owner's records, newest-created first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Achievement, error)
	// List returns all records matching the filter, newest-created first,
	// with Owner populated for display.
	List(ctx context.Context, filter AchievementFilter) ([]models.Achievement, error)
	Save(ctx context.Context, a *models.Achievement) error
	Delete(ctx context.Context, id string) error

	CountByCategory(ctx context.Context) ([]models.CategoryCount, error)
	CountByStatus(ctx context.Context) ([]models.StatusCount, error)
	CountByMonth(ctx context.Context) ([]models.MonthCount, error)

	// ExistsByCertificateKey reports whether any record references the blob
	// key. Used by the orphan reaper.
	ExistsByCertificateKey(ctx context.Context, key string) (bool, error)
}
