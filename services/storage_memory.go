package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"onboarding/models"
)

// MemoryStorage is an in-memory BlobStorage used by tests. It records deletes
// and can be told to fail a specific upload.
type MemoryStorage struct {
	mu      sync.Mutex
	baseURL string
	objects map[string][]byte
	deleted []string
	uploads int

	// FailUploadAt makes the nth upload (1-based) fail; 0 disables.
	FailUploadAt int
}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{baseURL: baseURL, objects: make(map[string][]byte)}
}

func (m *MemoryStorage) Upload(ctx context.Context, data []byte, filename, contentType, folder string) (models.StoredFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads++
	if m.FailUploadAt > 0 && m.uploads == m.FailUploadAt {
		return models.StoredFile{}, errors.New("upload rejected")
	}
	name := fmt.Sprintf("%s/%d-%s", folder, m.uploads, filename)
	m.objects[name] = data
	return models.StoredFile{Name: name, URL: m.baseURL + "/files/" + name}, nil
}

func (m *MemoryStorage) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[name]; !ok {
		return fmt.Errorf("no object named %s", name)
	}
	delete(m.objects, name)
	m.deleted = append(m.deleted, name)
	return nil
}

// Uploads returns how many upload calls were attempted.
func (m *MemoryStorage) Uploads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploads
}

// Live returns how many uploaded objects have not been deleted.
func (m *MemoryStorage) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Deleted returns the names passed to Delete, in call order.
func (m *MemoryStorage) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}
