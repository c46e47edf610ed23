package audit

import "time"

// Outcome mirrors the verifier's terminal classifications.
const (
	OutcomeValid   = "valid"
	OutcomeExpired = "expired"
	OutcomeInvalid = "invalid"
)

// Modes of the verification path that produced an event.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
)

// ScanEvent is one completed verification attempt, success or failure.
// CredentialID and AgentID are optional: a malformed scan has no decodable
// credential, and an anonymous device has no agent id.
type ScanEvent struct {
	Timestamp    time.Time
	CredentialID string
	AgentID      string
	Outcome      string
	Mode         string
	Message      string
}
