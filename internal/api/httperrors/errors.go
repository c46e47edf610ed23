package httperrors

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/odariane19-ui/permiscard/internal/types"
	"github.com/go-openapi/swag"
)

// HTTPError extends the public error shape with internals that are logged
// but never serialized to the client.
type HTTPError struct {
	types.PublicHTTPError
	Internal       error                  `json:"-"`
	AdditionalData map[string]interface{} `json:"-"`
}

func (e *HTTPError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("HTTPError %d (%s): %s, internal: %s", *e.Code, *e.Type, *e.Title, e.Internal.Error())
	}

	return fmt.Sprintf("HTTPError %d (%s): %s", *e.Code, *e.Type, *e.Title)
}

// NewHTTPError returns a plain HTTP error with the given status, type and title.
func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{
		PublicHTTPError: types.PublicHTTPError{
			Code:  swag.Int64(int64(code)),
			Type:  swag.String(errorType),
			Title: swag.String(title),
		},
	}
}

// NewHTTPErrorWithDetail attaches an internal error for logging.
func NewHTTPErrorWithDetail(code int, errorType string, title string, internal error) *HTTPError {
	e := NewHTTPError(code, errorType, title)
	e.Internal = internal

	return e
}

// NewFromEcho converts an echo-native HTTPError into our public shape.
func NewFromEcho(e *echo.HTTPError) *HTTPError {
	title := http.StatusText(e.Code)
	if msg, ok := e.Message.(string); ok {
		title = msg
	}

	return NewHTTPError(e.Code, types.PublicHTTPErrorTypeGeneric, title)
}

// HTTPValidationError is returned for request payloads failing validation.
type HTTPValidationError struct {
	types.PublicHTTPValidationError
	Internal       error                  `json:"-"`
	AdditionalData map[string]interface{} `json:"-"`
}

func (e *HTTPValidationError) Error() string {
	return fmt.Sprintf("HTTPValidationError %d (%s): %s (%d fields)", *e.Code, *e.Type, *e.Title, len(e.ValidationErrors))
}

// NewHTTPValidationError returns a validation error with per-field details.
func NewHTTPValidationError(code int, errorType string, title string, validationErrors []*types.HTTPValidationErrorDetail) *HTTPValidationError {
	return &HTTPValidationError{
		PublicHTTPValidationError: types.PublicHTTPValidationError{
			PublicHTTPError: types.PublicHTTPError{
				Code:  swag.Int64(int64(code)),
				Type:  swag.String(errorType),
				Title: swag.String(title),
			},
			ValidationErrors: validationErrors,
		},
	}
}
