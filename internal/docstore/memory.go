package docstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
)

// MemoryStore is an in-process document store with the same contract as
// the Postgres-backed one. It exists for tests and local development
// without a database.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]*memCollection
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memCollection)}
}

// Collection returns a Store bound to the named collection, creating it
// on first use.
func (s *MemoryStore) Collection(name string) Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		c = &memCollection{}
		s.collections[name] = c
	}
	return c
}

type memCollection struct {
	mu   sync.Mutex
	docs []models.Document // insertion order
}

func (c *memCollection) Insert(_ context.Context, fields map[string]any) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	docID := uuid.New().String()
	copied, err := deepCopy(StripNilFields(fields))
	if err != nil {
		return "", err
	}
	c.docs = append(c.docs, models.Document{DocID: docID, Fields: copied})
	return docID, nil
}

func (c *memCollection) Update(_ context.Context, docID string, fields map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.docs {
		if c.docs[i].DocID != docID {
			continue
		}
		copied, err := deepCopy(StripNilFields(fields))
		if err != nil {
			return err
		}
		for k, v := range copied {
			c.docs[i].Fields[k] = v
		}
		return nil
	}
	return ErrDocumentNotFound
}

func (c *memCollection) QueryAll(_ context.Context) ([]models.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Newest first, matching the Postgres ordering.
	out := make([]models.Document, 0, len(c.docs))
	for i := len(c.docs) - 1; i >= 0; i-- {
		copied, err := deepCopy(c.docs[i].Fields)
		if err != nil {
			return nil, err
		}
		out = append(out, models.Document{DocID: c.docs[i].DocID, Fields: copied})
	}
	return out, nil
}

// deepCopy round-trips a field map through JSON so callers can never
// alias stored state. It also normalizes values (time.Time -> RFC3339
// string) the same way the real store does.
func deepCopy(fields map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
