package types

import (
	"github.com/go-openapi/strfmt"
	openapierrors "github.com/go-openapi/errors"
)

// PostCreatePermitPayload is the request body for creating a permit record
// and issuing its first credential.
type PostCreatePermitPayload struct {
	// Full name of the permit holder
	HolderName *string `json:"holder_name"`
	// Serial number printed on the physical card
	SerialNumber *string `json:"serial_number"`
	// Zone the permit is valid in
	Zone *string `json:"zone"`
	// Permit type
	Type *string `json:"type"`
	// Expiration date of the permit itself (not of the credential)
	ExpirationDate *strfmt.DateTime `json:"expiration_date"`
}

// Validate validates this post create permit payload
func (m *PostCreatePermitPayload) Validate(_ strfmt.Registry) error {
	var res []error

	if m.HolderName == nil {
		res = append(res, openapierrors.Required("holder_name", "body", nil))
	}
	if m.SerialNumber == nil {
		res = append(res, openapierrors.Required("serial_number", "body", nil))
	}
	if m.Zone == nil {
		res = append(res, openapierrors.Required("zone", "body", nil))
	}
	if m.Type == nil {
		res = append(res, openapierrors.Required("type", "body", nil))
	}
	if m.ExpirationDate == nil {
		res = append(res, openapierrors.Required("expiration_date", "body", nil))
	}

	if len(res) > 0 {
		return openapierrors.CompositeValidationError(res...)
	}

	return nil
}

// PermitCredentialResponse carries the two signed strings persisted alongside
// a record plus the URI embedded in the optical code.
type PermitCredentialResponse struct {
	RecordID       *string         `json:"record_id"`
	PayloadEncoded *string         `json:"payload"`
	Signature      *string         `json:"signature"`
	CodeURI        *string         `json:"code_uri"`
	IssuedAt       strfmt.DateTime `json:"issued_at,omitempty"`
}

// Validate validates this permit credential response
func (m *PermitCredentialResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if m.RecordID == nil {
		res = append(res, openapierrors.Required("record_id", "body", nil))
	}
	if m.PayloadEncoded == nil {
		res = append(res, openapierrors.Required("payload", "body", nil))
	}
	if m.Signature == nil {
		res = append(res, openapierrors.Required("signature", "body", nil))
	}
	if m.CodeURI == nil {
		res = append(res, openapierrors.Required("code_uri", "body", nil))
	}

	if len(res) > 0 {
		return openapierrors.CompositeValidationError(res...)
	}

	return nil
}

// GetPermitResponse is the full record as seen by the issuing authority.
type GetPermitResponse struct {
	RecordID       *string         `json:"record_id"`
	HolderName     *string         `json:"holder_name"`
	SerialNumber   *string         `json:"serial_number"`
	Zone           *string         `json:"zone"`
	Type           *string         `json:"type"`
	ExpirationDate strfmt.DateTime `json:"expiration_date"`

	// Credential is absent until one has been issued for the record.
	Credential *PermitCredentialResponse `json:"credential,omitempty"`
}

// Validate validates this get permit response
func (m *GetPermitResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if m.RecordID == nil {
		res = append(res, openapierrors.Required("record_id", "body", nil))
	}
	if m.HolderName == nil {
		res = append(res, openapierrors.Required("holder_name", "body", nil))
	}

	if m.Credential != nil {
		if err := m.Credential.Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return openapierrors.CompositeValidationError(res...)
	}

	return nil
}

// GetPublicKeyResponse exports the verification key in PEM form.
type GetPublicKeyResponse struct {
	PublicKey *string `json:"public_key"`
	Algorithm string  `json:"algorithm,omitempty"`
}

// Validate validates this get public key response
func (m *GetPublicKeyResponse) Validate(_ strfmt.Registry) error {
	if m.PublicKey == nil {
		return openapierrors.CompositeValidationError(openapierrors.Required("public_key", "body", nil))
	}

	return nil
}
