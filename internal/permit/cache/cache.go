// Package cache holds the verifying device's local snapshot store. It is
// what makes offline verification possible: the last full record seen for
// each record id, overwritten wholesale on every refresh, never synced back
// to the authority. The cache enforces no staleness bound of its own; the
// freshness check applies to credentials, not snapshots. Stale expiration
// dates are an accepted tradeoff of offline operation.
package cache

import (
	"context"
	"time"

	"github.com/odariane19-ui/permiscard/internal/permit/record"
)

// Store is the device-local record source plus its write side.
type Store interface {
	record.Source

	// Put overwrites any existing snapshot for the record's id and stamps
	// cachedAt. Entries are replaced as a whole, never merged.
	Put(ctx context.Context, rec *record.Record) error

	// Clear wipes all entries (logout / device reset).
	Clear(ctx context.Context) error
}

// Entry pairs a snapshot with the time it was taken.
type Entry struct {
	Record   *record.Record
	CachedAt time.Time
}
