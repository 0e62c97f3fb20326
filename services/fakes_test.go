package services

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"achievement-review-system/models"
	"achievement-review-system/storage"
)

// memStore is an in-memory AchievementStore. Error fields inject faults for
// the ordering-invariant tests.
type memStore struct {
	mu    sync.Mutex
	items map[string]models.Achievement
	users map[string]*models.User

	createErr error
	saveErr   error
	deleteErr error
}

func newMemStore() *memStore {
	return &memStore{
		items: make(map[string]models.Achievement),
		users: make(map[string]*models.User),
	}
}

func (m *memStore) Create(_ context.Context, a *models.Achievement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	a.UpdatedAt = time.Now()
	m.items[a.ID] = *a
	return nil
}

func (m *memStore) FindOwned(_ context.Context, ownerID, id string) (*models.Achievement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok || a.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	copy := a
	return &copy, nil
}

func (m *memStore) FindByID(_ context.Context, id string) (*models.Achievement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	copy := a
	return &copy, nil
}

func (m *memStore) ListByOwner(_ context.Context, ownerID string) ([]models.Achievement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Achievement
	for _, a := range m.items {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) List(_ context.Context, filter AchievementFilter) ([]models.Achievement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Achievement
	for _, a := range m.items {
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if owner, ok := m.users[a.OwnerID]; ok {
			a.Owner = owner
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) Save(_ context.Context, a *models.Achievement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	a.UpdatedAt = time.Now()
	m.items[a.ID] = *a
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.items, id)
	return nil
}

func (m *memStore) CountByCategory(_ context.Context) ([]models.CategoryCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[models.Category]int64)
	for _, a := range m.items {
		counts[a.Category]++
	}
	var out []models.CategoryCount
	for category, n := range counts {
		out = append(out, models.CategoryCount{Category: category, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (m *memStore) CountByStatus(_ context.Context) ([]models.StatusCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[models.Status]int64)
	for _, a := range m.items {
		counts[a.Status]++
	}
	var out []models.StatusCount
	for status, n := range counts {
		out = append(out, models.StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (m *memStore) CountByMonth(_ context.Context) ([]models.MonthCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int64)
	for _, a := range m.items {
		counts[a.CreatedAt.Format("2006-01")]++
	}
	var out []models.MonthCount
	for month, n := range counts {
		out = append(out, models.MonthCount{Month: month, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (m *memStore) ExistsByCertificateKey(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if a.CertificateKey == key {
			return true, nil
		}
	}
	return false, nil
}

// memBlobs is an in-memory BlobStore with injectable Put/Delete failures.
type memBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	mods    map[string]time.Time

	putErr    error
	deleteErr error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{
		objects: make(map[string][]byte),
		mods:    make(map[string]time.Time),
	}
}

func (b *memBlobs) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.putErr != nil {
		return b.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.objects[key] = data
	b.mods[key] = time.Now()
	return nil
}

func (b *memBlobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deleteErr != nil {
		return b.deleteErr
	}
	delete(b.objects, key)
	delete(b.mods, key)
	return nil
}

func (b *memBlobs) List(_ context.Context) ([]storage.BlobInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []storage.BlobInfo
	for key := range b.objects {
		out = append(out, storage.BlobInfo{Key: key, LastModified: b.mods[key]})
	}
	return out, nil
}

func (b *memBlobs) URL(key string) string {
	return "/uploads/" + key
}

func (b *memBlobs) has(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.objects[key]
	return ok
}

func (b *memBlobs) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

// pdfUpload builds a fake certificate upload of the given size.
func pdfUpload(name string, size int) *Upload {
	return &Upload{
		Filename:    name,
		ContentType: "application/pdf",
		Size:        int64(size),
		Content:     bytes.NewReader(bytes.Repeat([]byte("x"), size)),
	}
}

func validSubmit(size int) SubmitInput {
	return SubmitInput{
		Title:    "Science Fair",
		Category: "Academic",
		Date:     "2024-03-01",
		File:     pdfUpload("scan.pdf", size),
	}
}

func strptr(s string) *string { return &s }
