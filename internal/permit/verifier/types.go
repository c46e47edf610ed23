package verifier

import (
	"github.com/odariane19-ui/permiscard/internal/permit/credential"
	"github.com/odariane19-ui/permiscard/internal/permit/record"
)

// Mode names which record source a verification ran against.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// Result is a terminal classification. Infrastructure failures are not a
// Result; they surface as errors so the caller can retry or fall back.
type Result string

const (
	ResultValid   Result = "valid"
	ResultExpired Result = "expired"
	ResultInvalid Result = "invalid"
)

// Outcome is one terminal classification with its supporting data.
type Outcome struct {
	Result  Result
	Message string

	// Record is populated for valid and expired outcomes, where the
	// record was resolved. It stays nil when the credential never made it
	// past signature or structure checks.
	Record *record.Record

	// Payload is populated once the credential payload decoded, even when
	// the outcome is invalid.
	Payload *credential.Payload
}

// VerifyRequest carries one decoded optical scan into the verifier.
type VerifyRequest struct {
	// PayloadEncoded and Signature are the URL-safe base64 strings lifted
	// from the code URI, untouched.
	PayloadEncoded string
	Signature      string

	// Source resolves the record id. Online and offline verification use
	// the same code path with a different Source.
	Source record.Source

	Mode    Mode
	AgentID string
}
