package record

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by any Source when the record id is unknown.
// All other errors from a Source are treated as infrastructure failures.
var ErrNotFound = errors.New("record not found")

// Record is the permit entity a credential attests to.
type Record struct {
	ID             string
	HolderName     string
	SerialNumber   string
	Zone           string
	Type           string
	ExpirationDate time.Time

	// Credential is absent until one has been issued for the record.
	Credential *IssuedCredential
}

// IssuedCredential holds the signed strings persisted alongside a record
// so the card can be re-rendered without re-signing.
type IssuedCredential struct {
	PayloadEncoded string
	Signature      string
	IssuedAt       time.Time
}

// Expired reports whether the record's own expiration date lies before now.
// This is the record's lifecycle, distinct from credential freshness.
func (r *Record) Expired(now time.Time) bool {
	return r.ExpirationDate.Before(now)
}

// Source resolves a record id to a full record. Both the authority store
// (online) and the verification cache (offline) implement it, so the
// verifier is polymorphic over where records come from.
type Source interface {
	FetchRecord(ctx context.Context, id string) (*Record, error)
}
