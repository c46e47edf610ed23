// Package permits holds the authority-side record and credential endpoints.
package permits

import (
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"

	"github.com/odariane19-ui/permiscard/internal/permit/record"
	"github.com/odariane19-ui/permiscard/internal/permit/transport"
	"github.com/odariane19-ui/permiscard/internal/types"
)

func credentialResponse(recordID string, cred *record.IssuedCredential) *types.PermitCredentialResponse {
	return &types.PermitCredentialResponse{
		RecordID:       swag.String(recordID),
		PayloadEncoded: swag.String(cred.PayloadEncoded),
		Signature:      swag.String(cred.Signature),
		CodeURI:        swag.String(transport.ToURI(cred.PayloadEncoded, cred.Signature)),
		IssuedAt:       strfmt.DateTime(cred.IssuedAt),
	}
}

func permitResponse(rec *record.Record) *types.GetPermitResponse {
	response := &types.GetPermitResponse{
		RecordID:       swag.String(rec.ID),
		HolderName:     swag.String(rec.HolderName),
		SerialNumber:   swag.String(rec.SerialNumber),
		Zone:           swag.String(rec.Zone),
		Type:           swag.String(rec.Type),
		ExpirationDate: strfmt.DateTime(rec.ExpirationDate),
	}

	if rec.Credential != nil {
		response.Credential = credentialResponse(rec.ID, rec.Credential)
	}

	return response
}
