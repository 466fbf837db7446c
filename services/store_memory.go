package services

import (
	"context"
	"sync"

	"onboarding/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory RecordStore used by tests. It enforces the same
// unique-email rule the Mongo index does.
type MemoryStore struct {
	mu      sync.Mutex
	records map[models.Category][]models.Record

	// InsertErr, when set, makes every Insert fail with it.
	InsertErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[models.Category][]models.Record)}
}

func (s *MemoryStore) FindByEmail(ctx context.Context, cat models.Category, email string) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records[cat] {
		if rec.Fields["email"] == email {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Insert(ctx context.Context, rec *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InsertErr != nil {
		return s.InsertErr
	}
	for _, existing := range s.records[rec.Category] {
		if existing.Fields["email"] == rec.Fields["email"] {
			return ErrDuplicateEmail
		}
	}
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	s.records[rec.Category] = append(s.records[rec.Category], *rec)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, cat models.Category, newestFirst bool) ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.records[cat]
	out := make([]models.Record, len(stored))
	if newestFirst {
		for i, rec := range stored {
			out[len(stored)-1-i] = rec
		}
	} else {
		copy(out, stored)
	}
	return out, nil
}

// Count returns how many records a category holds.
func (s *MemoryStore) Count(cat models.Category) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records[cat])
}
