package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/odariane19-ui/permiscard/internal/permit/record"
)

type memoryStore struct {
	c *gocache.Cache
}

// NewMemory creates a non-durable cache. Snapshots never expire on their
// own; the verifier's freshness rules apply to credentials, not entries.
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewMemory() Store {
	return &memoryStore{
		c: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (m *memoryStore) Put(_ context.Context, rec *record.Record) error {
	if rec.ID == "" {
		return errors.New("record id must not be empty")
	}

	copied := *rec
	m.c.Set(rec.ID, &Entry{Record: &copied, CachedAt: time.Now()}, gocache.NoExpiration)

	return nil
}

func (m *memoryStore) FetchRecord(_ context.Context, id string) (*record.Record, error) {
	v, ok := m.c.Get(id)
	if !ok {
		return nil, record.ErrNotFound
	}

	entry, ok := v.(*Entry)
	if !ok {
		return nil, record.ErrNotFound
	}

	copied := *entry.Record

	return &copied, nil
}

func (m *memoryStore) Clear(_ context.Context) error {
	m.c.Flush()

	return nil
}
