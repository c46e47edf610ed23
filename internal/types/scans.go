package types

import (
	"github.com/go-openapi/strfmt"
	openapierrors "github.com/go-openapi/errors"
)

// PostVerifyScanPayload is the verification request: the raw text decoded
// from the optical symbol, plus the identity of the scanning agent.
type PostVerifyScanPayload struct {
	// Raw URI decoded from the optical code
	Code *string `json:"code"`
	// Identifier of the verifying agent, if known
	AgentID string `json:"agent_id,omitempty"`
}

// Validate validates this post verify scan payload
func (m *PostVerifyScanPayload) Validate(_ strfmt.Registry) error {
	if m.Code == nil {
		return openapierrors.CompositeValidationError(openapierrors.Required("code", "body", nil))
	}

	return nil
}

// VerifiedRecord is the record subset shown to the verifying agent. The
// shape is identical for the online and offline paths.
type VerifiedRecord struct {
	HolderName     string          `json:"holder_name"`
	SerialNumber   string          `json:"serial_number"`
	Zone           string          `json:"zone"`
	Type           string          `json:"type"`
	ExpirationDate strfmt.DateTime `json:"expiration_date"`
}

// PostVerifyScanResponse is the single wire contract of spec interop:
// result, optional record, human-readable message.
type PostVerifyScanResponse struct {
	// One of: valid, expired, invalid
	Result *string `json:"result"`
	// Present for valid and expired outcomes
	Record *VerifiedRecord `json:"record,omitempty"`
	// Human-readable explanation of the outcome
	Message *string `json:"message"`
}

// Validate validates this post verify scan response
func (m *PostVerifyScanResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if m.Result == nil {
		res = append(res, openapierrors.Required("result", "body", nil))
	}
	if m.Message == nil {
		res = append(res, openapierrors.Required("message", "body", nil))
	}

	if len(res) > 0 {
		return openapierrors.CompositeValidationError(res...)
	}

	return nil
}

// GetScanLogsResponseEntriesItems0 is a single scan audit entry.
type GetScanLogsResponseEntriesItems0 struct {
	Timestamp    *strfmt.DateTime `json:"timestamp"`
	Outcome      *string          `json:"outcome"`
	Mode         *string          `json:"mode"`
	CredentialID string           `json:"credential_id,omitempty"`
	AgentID      string           `json:"agent_id,omitempty"`
	Message      string           `json:"message,omitempty"`
}

// Validate validates this get scan logs response entries items0
func (m *GetScanLogsResponseEntriesItems0) Validate(_ strfmt.Registry) error {
	var res []error

	if m.Timestamp == nil {
		res = append(res, openapierrors.Required("timestamp", "body", nil))
	}
	if m.Outcome == nil {
		res = append(res, openapierrors.Required("outcome", "body", nil))
	}
	if m.Mode == nil {
		res = append(res, openapierrors.Required("mode", "body", nil))
	}

	if len(res) > 0 {
		return openapierrors.CompositeValidationError(res...)
	}

	return nil
}

// GetScanLogsResponse is the scan audit trail query result.
type GetScanLogsResponse struct {
	Entries []*GetScanLogsResponseEntriesItems0 `json:"entries"`
	Total   int64                               `json:"total"`
}

// Validate validates this get scan logs response
func (m *GetScanLogsResponse) Validate(formats strfmt.Registry) error {
	var res []error

	for _, entry := range m.Entries {
		if entry == nil {
			continue
		}
		if err := entry.Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return openapierrors.CompositeValidationError(res...)
	}

	return nil
}
