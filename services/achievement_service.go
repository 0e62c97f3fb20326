package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"achievement-review-system/models"
	"achievement-review-system/storage"
	"achievement-review-system/utils"
)

// MaxCertificateSize caps certificate uploads at 5 MiB.
const MaxCertificateSize = 5 * 1024 * 1024

var allowedCertificateTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/jpg":       true,
}

const dateLayout = "2006-01-02"

// Upload is a certificate file detached from its transport, so the engine
// can be driven without a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type SubmitInput struct {
	Title       string
	Category    string
	Description string
	Date        string
	File        *Upload
}

// Patch carries a partial update: nil fields are untouched, non-nil fields
// overwrite, empty strings included.
type Patch struct {
	Title       *string
	Category    *string
	Description *string
	Date        *string
}

// AchievementService runs the submission and review lifecycle over the
// achievement store and the certificate blob store.
type AchievementService struct {
	store AchievementStore
	blobs storage.BlobStore
}

func NewAchievementService(store AchievementStore, blobs storage.BlobStore) *AchievementService {
	return &AchievementService{store: store, blobs: blobs}
}

func validateUpload(f *Upload) error {
	if f == nil {
		return validationErrorf("certificate file is required")
	}
	if !allowedCertificateTypes[f.ContentType] {
		return ErrUnsupportedMedia
	}
	if f.Size > MaxCertificateSize {
		return ErrPayloadTooLarge
	}
	return nil
}

func parseDate(raw string) (time.Time, error) {
	if d, err := time.Parse(dateLayout, raw); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, validationErrorf("date must be YYYY-MM-DD")
	}
	return d, nil
}

func (s *AchievementService) decorate(a *models.Achievement) *models.Achievement {
	a.CertificateURL = s.blobs.URL(a.CertificateKey)
	return a
}

// Submit creates a new Pending achievement. The certificate blob is stored
// first; if the record commit then fails, the blob is reaped best-effort so
// storage is not silently leaked.
func (s *AchievementService) Submit(ctx context.Context, ownerID string, in SubmitInput) (*models.Achievement, error) {
	if in.Title == "" {
		return nil, validationErrorf("title is required")
	}
	if in.Category == "" {
		return nil, validationErrorf("category is required")
	}
	category := models.Category(in.Category)
	if !category.Valid() {
		return nil, validationErrorf(fmt.Sprintf("invalid category %q", in.Category))
	}
	if in.Date == "" {
		return nil, validationErrorf("date is required")
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if err := validateUpload(in.File); err != nil {
		return nil, err
	}

	key := utils.CertificateKey(in.File.Filename)
	if err := s.blobs.Put(ctx, key, in.File.Content, in.File.Size, in.File.ContentType); err != nil {
		return nil, fmt.Errorf("%w: storing certificate: %v", ErrStorage, err)
	}

	achievement := &models.Achievement{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Title:           in.Title,
		Description:     in.Description,
		Date:            date,
		Category:        category,
		CertificateKey:  key,
		CertificateName: in.File.Filename,
		Status:          models.StatusPending,
	}
	if err := s.store.Create(ctx, achievement); err != nil {
		// Record commit failed after the blob landed. Reap the orphan now if
		// we can; the scheduled reaper covers the case where we can't.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			log.Printf("⚠️  [ACHIEVEMENT] Orphaned certificate %s left behind: %v", key, delErr)
		}
		return nil, fmt.Errorf("%w: creating achievement: %v", ErrStorage, err)
	}

	return s.decorate(achievement), nil
}

// ListOwned returns the owner's achievements, newest first.
func (s *AchievementService) ListOwned(ctx context.Context, ownerID string) ([]models.Achievement, error) {
	items, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.decorate(&items[i])
	}
	return items, nil
}

// Edit applies a partial update to an owned achievement and unconditionally
// resets it to Pending with an empty reviewer comment. A replacement
// certificate is stored before the old one is deleted; the old blob survives
// any failure on the way.
func (s *AchievementService) Edit(ctx context.Context, ownerID, id string, patch Patch, file *Upload) (*models.Achievement, error) {
	achievement, err := s.store.FindOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		achievement.Title = *patch.Title
	}
	if patch.Category != nil {
		category := models.Category(*patch.Category)
		if !category.Valid() {
			return nil, validationErrorf(fmt.Sprintf("invalid category %q", *patch.Category))
		}
		achievement.Category = category
	}
	if patch.Description != nil {
		achievement.Description = *patch.Description
	}
	if patch.Date != nil {
		date, err := parseDate(*patch.Date)
		if err != nil {
			return nil, err
		}
		achievement.Date = date
	}

	oldKey := ""
	if file != nil {
		if err := validateUpload(file); err != nil {
			return nil, err
		}
		newKey := utils.CertificateKey(file.Filename)
		if err := s.blobs.Put(ctx, newKey, file.Content, file.Size, file.ContentType); err != nil {
			return nil, fmt.Errorf("%w: storing certificate: %v", ErrStorage, err)
		}
		oldKey = achievement.CertificateKey
		achievement.CertificateKey = newKey
		achievement.CertificateName = file.Filename
	}

	// Any owner edit reopens the review cycle, even if nothing changed.
	achievement.Status = models.StatusPending
	achievement.ReviewerComment = ""

	if err := s.store.Save(ctx, achievement); err != nil {
		if file != nil {
			if delErr := s.blobs.Delete(ctx, achievement.CertificateKey); delErr != nil {
				log.Printf("⚠️  [ACHIEVEMENT] Orphaned certificate %s left behind: %v", achievement.CertificateKey, delErr)
			}
		}
		return nil, fmt.Errorf("%w: updating achievement: %v", ErrStorage, err)
	}

	// The record now references the new blob, so the old one can go. A
	// failure here is a cleanup problem, not the caller's.
	if oldKey != "" {
		if err := s.blobs.Delete(ctx, oldKey); err != nil {
			log.Printf("⚠️  [ACHIEVEMENT] Failed to delete replaced certificate %s: %v", oldKey, err)
		}
	}

	return s.decorate(achievement), nil
}

// Delete removes an owned achievement and then its certificate. The record
// goes first so no live record ever points at a deleted blob; a blob-delete
// failure afterwards is logged and left to the reaper.
func (s *AchievementService) Delete(ctx context.Context, ownerID, id string) error {
	achievement, err := s.store.FindOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, achievement.ID); err != nil {
		return fmt.Errorf("%w: deleting achievement: %v", ErrStorage, err)
	}

	if err := s.blobs.Delete(ctx, achievement.CertificateKey); err != nil {
		log.Printf("⚠️  [ACHIEVEMENT] Failed to delete certificate %s: %v", achievement.CertificateKey, err)
	}
	return nil
}

// AdminList returns all achievements matching the filter, newest first, with
// owner name/email attached for the review dashboard.
func (s *AchievementService) AdminList(ctx context.Context, filter AchievementFilter) ([]models.Achievement, error) {
	items, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.decorate(&items[i])
	}
	return items, nil
}

// Review records an admin decision. Reviews are idempotent re-assignments: a
// later review simply overwrites status and comment, whatever the current
// state is.
func (s *AchievementService) Review(ctx context.Context, id, action, comment string) (*models.Achievement, error) {
	achievement, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch action {
	case "approve":
		achievement.Status = models.StatusApproved
	case "reject":
		achievement.Status = models.StatusRejected
	default:
		return nil, validationErrorf(fmt.Sprintf("invalid action %q", action))
	}
	achievement.ReviewerComment = comment

	if err := s.store.Save(ctx, achievement); err != nil {
		return nil, fmt.Errorf("%w: updating achievement: %v", ErrStorage, err)
	}
	return s.decorate(achievement), nil
}
