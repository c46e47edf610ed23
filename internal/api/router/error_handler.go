package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/odariane19-ui/permiscard/internal/api/httperrors"
	"github.com/odariane19-ui/permiscard/internal/types"
	"github.com/odariane19-ui/permiscard/internal/util"
)

// HTTPErrorHandler renders every error bubbling out of a handler as the
// public error envelope. Internal error details are only exposed when the
// config explicitly allows it (local development).
func HTTPErrorHandler(hideInternalServerErrorDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := util.LogFromEchoContext(c)

		var code int
		var payload interface{}

		var validationErr *httperrors.HTTPValidationError
		var httpErr *httperrors.HTTPError
		var echoErr *echo.HTTPError

		switch {
		case errors.As(err, &validationErr):
			code = int(*validationErr.Code)
			payload = validationErr
		case errors.As(err, &httpErr):
			code = int(*httpErr.Code)
			payload = httpErr

			if httpErr.Internal != nil {
				log.Error().Err(httpErr.Internal).Int("status", code).Msg("Internal error behind HTTP error")
			}
		case errors.As(err, &echoErr):
			code = echoErr.Code
			payload = httperrors.NewFromEcho(echoErr)
		default:
			code = http.StatusInternalServerError

			title := http.StatusText(http.StatusInternalServerError)
			if !hideInternalServerErrorDetails {
				title = err.Error()
			}

			log.Error().Err(err).Msg("Unhandled error")
			payload = httperrors.NewHTTPError(code, types.PublicHTTPErrorTypeGeneric, title)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, payload)
		}
		if err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
	}
}
