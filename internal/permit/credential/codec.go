package credential

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CurrentSchemaVersion is stamped into every newly issued payload.
const CurrentSchemaVersion = 1

// payloadFieldCount is the number of serialized fields.
const payloadFieldCount = 3

var (
	ErrEmptyRecordID    = errors.New("record id must not be empty")
	ErrInvalidVersion   = errors.New("schema version must be positive")
	ErrMalformedPayload = errors.New("malformed credential payload")
)

// Payload is the compact record reference embedded in the optical code.
// Immutable once constructed; the signature is only valid over the exact
// bytes produced by Encode.
type Payload struct {
	RecordID      string
	IssuedAt      int64 // epoch milliseconds
	SchemaVersion int
}

// Encode serializes the payload fields in a fixed, documented order:
//
//	<schemaVersion>:<issuedAtMillis>:<recordID>
//
// The record id comes last so opaque ids may themselves contain the
// separator. The output is byte-stable across implementations, which the
// signature scheme depends on.
func Encode(recordID string, issuedAt int64, schemaVersion int) ([]byte, error) {
	if recordID == "" {
		return nil, ErrEmptyRecordID
	}
	if schemaVersion <= 0 {
		return nil, ErrInvalidVersion
	}

	return []byte(fmt.Sprintf("%d:%d:%s", schemaVersion, issuedAt, recordID)), nil
}

// EncodePayload is a convenience wrapper over Encode.
func EncodePayload(p *Payload) ([]byte, error) {
	return Encode(p.RecordID, p.IssuedAt, p.SchemaVersion)
}

// Decode parses serialized payload bytes. It fails only on structural
// violations (wrong field count, non-numeric version or timestamp, empty
// record id), never on valid-but-unexpected values.
func Decode(b []byte) (*Payload, error) {
	parts := strings.SplitN(string(b), ":", payloadFieldCount)
	if len(parts) != payloadFieldCount {
		return nil, errors.Wrap(ErrMalformedPayload, "expected three serialized fields")
	}

	schemaVersion, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, errors.Wrap(ErrMalformedPayload, "non-numeric schema version")
	}
	if schemaVersion <= 0 {
		return nil, errors.Wrap(ErrMalformedPayload, "non-positive schema version")
	}

	issuedAt, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedPayload, "non-numeric issuance timestamp")
	}

	if parts[2] == "" {
		return nil, errors.Wrap(ErrMalformedPayload, "empty record id")
	}

	return &Payload{
		RecordID:      parts[2],
		IssuedAt:      issuedAt,
		SchemaVersion: schemaVersion,
	}, nil
}
