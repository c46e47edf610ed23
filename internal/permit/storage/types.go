package storage

import "time"

// ScanLogEntry is one row of the append-only scan audit trail. Credential
// and agent ids are optional: a malformed scan has no decodable credential,
// and an anonymous device has no agent id.
type ScanLogEntry struct {
	CredentialID *string
	AgentID      *string
	Timestamp    time.Time
	Outcome      string
	Mode         string
	Message      string
}
