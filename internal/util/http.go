package util

import (
	"net/http"

	openapierrors "github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/odariane19-ui/permiscard/internal/api/httperrors"
	"github.com/odariane19-ui/permiscard/internal/types"
)

// Validatable is implemented by all payload and response types.
type Validatable interface {
	Validate(formats strfmt.Registry) error
}

// BindAndValidateBody binds the request body to v and runs its validation,
// converting failures into the public validation error shape.
func BindAndValidateBody(c echo.Context, v Validatable) error {
	binder, ok := c.Echo().Binder.(*echo.DefaultBinder)
	if !ok {
		return echo.ErrInternalServerError
	}

	if err := binder.BindBody(c, v); err != nil {
		return httperrors.NewHTTPErrorWithDetail(
			http.StatusBadRequest,
			types.PublicHTTPErrorTypeGeneric,
			"Malformed request body",
			err,
		)
	}

	return validatePayload(c, v)
}

// ValidateAndReturn validates the response payload before serializing it.
// An invalid response is a programming error and surfaces as a 500.
func ValidateAndReturn(c echo.Context, code int, v Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		LogFromEchoContext(c).Error().Err(err).Msg("Response payload validation failed")
		return echo.ErrInternalServerError
	}

	return c.JSON(code, v)
}

func validatePayload(c echo.Context, v Validatable) error {
	err := v.Validate(strfmt.Default)
	if err == nil {
		return nil
	}

	var details []*types.HTTPValidationErrorDetail

	var flatten func(err error)
	flatten = func(err error) {
		switch e := err.(type) {
		case *openapierrors.CompositeError:
			for _, nested := range e.Errors {
				flatten(nested)
			}
		case *openapierrors.Validation:
			details = append(details, &types.HTTPValidationErrorDetail{
				Key:   swag.String(e.Name),
				In:    swag.String(e.In),
				Error: swag.String(e.Error()),
			})
		default:
			details = append(details, &types.HTTPValidationErrorDetail{
				Key:   swag.String("payload"),
				In:    swag.String("body"),
				Error: swag.String(err.Error()),
			})
		}
	}
	flatten(err)

	LogFromEchoContext(c).Debug().Err(err).Msg("Payload validation failed")

	return httperrors.NewHTTPValidationError(
		http.StatusBadRequest,
		types.PublicHTTPErrorTypeGeneric,
		"Validation failed",
		details,
	)
}
