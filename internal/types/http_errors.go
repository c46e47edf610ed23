package types

import (
	"github.com/go-openapi/strfmt"
	openapierrors "github.com/go-openapi/errors"
)

const (
	// PublicHTTPErrorTypeGeneric is the default error type returned to clients.
	PublicHTTPErrorTypeGeneric = "generic"
)

// PublicHTTPError is the wire shape of every non-validation error response.
type PublicHTTPError struct {
	// HTTP status code
	Code *int64 `json:"status"`
	// Short, human-readable summary of the problem
	Title *string `json:"title"`
	// Error type identifier
	Type *string `json:"type"`
}

// Validate validates this public http error
func (m *PublicHTTPError) Validate(_ strfmt.Registry) error {
	var res []error

	if m.Code == nil {
		res = append(res, openapierrors.Required("status", "body", nil))
	}
	if m.Title == nil {
		res = append(res, openapierrors.Required("title", "body", nil))
	}
	if m.Type == nil {
		res = append(res, openapierrors.Required("type", "body", nil))
	}

	if len(res) > 0 {
		return openapierrors.CompositeValidationError(res...)
	}

	return nil
}

// HTTPValidationErrorDetail describes a single failed constraint.
type HTTPValidationErrorDetail struct {
	// Key of the field that failed validation
	Key *string `json:"key"`
	// Location of the field (body, query, path)
	In *string `json:"in"`
	// Description of the violation
	Error *string `json:"error"`
}

// Validate validates this http validation error detail
func (m *HTTPValidationErrorDetail) Validate(_ strfmt.Registry) error {
	var res []error

	if m.Key == nil {
		res = append(res, openapierrors.Required("key", "body", nil))
	}
	if m.In == nil {
		res = append(res, openapierrors.Required("in", "body", nil))
	}
	if m.Error == nil {
		res = append(res, openapierrors.Required("error", "body", nil))
	}

	if len(res) > 0 {
		return openapierrors.CompositeValidationError(res...)
	}

	return nil
}

// PublicHTTPValidationError extends PublicHTTPError with per-field details.
type PublicHTTPValidationError struct {
	PublicHTTPError

	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}

// Validate validates this public http validation error
func (m *PublicHTTPValidationError) Validate(formats strfmt.Registry) error {
	var res []error

	if err := m.PublicHTTPError.Validate(formats); err != nil {
		res = append(res, err)
	}

	for _, detail := range m.ValidationErrors {
		if detail == nil {
			continue
		}
		if err := detail.Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return openapierrors.CompositeValidationError(res...)
	}

	return nil
}
