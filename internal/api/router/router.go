package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/odariane19-ui/permiscard/internal/api"
	"github.com/odariane19-ui/permiscard/internal/api/handlers"
)

// Init sets up the echo instance, middlewares and all route groups on the
// given server. It has to run after InitNewServer* and before Start.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = false
	s.Echo.HideBanner = true
	s.Echo.HTTPErrorHandler = HTTPErrorHandler(s.Config.Echo.HideInternalServerErrorDetails)

	s.Echo.Pre(middleware.RemoveTrailingSlash())
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.RequestID())
	s.Echo.Use(requestLogger(s.Config.Logger.Level))

	s.Router = &api.Router{
		Root:         s.Echo.Group(""),
		APIV1Permits: s.Echo.Group("/api/v1/permits"),
		APIV1Scans:   s.Echo.Group("/api/v1/scans"),
	}

	handlers.AttachAllRoutes(s)
}

// requestLogger injects a request-scoped zerolog logger into the request
// context so handlers can retrieve it via util.LogFromContext.
func requestLogger(level zerolog.Level) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			l := log.Logger.Level(level).With().
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()

			c.SetRequest(req.WithContext(l.WithContext(req.Context())))

			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler write the response first so the
				// final status is logged
				c.Error(err)
			}

			l.Info().
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Msg("Handled request")

			return nil
		}
	}
}
