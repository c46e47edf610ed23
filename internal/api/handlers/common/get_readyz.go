package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odariane19-ui/permiscard/internal/api"
	"github.com/odariane19-ui/permiscard/internal/util"
)

func GetReadyzRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/readyz", getReadyzHandler(s))
}

func getReadyzHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if !s.Ready() {
			return c.String(http.StatusServiceUnavailable, "not ready")
		}

		sqlDB, err := s.DB.DB()
		if err != nil {
			util.LogFromContext(ctx).Error().Err(err).Msg("Failed to access underlying database connection")
			return c.String(http.StatusServiceUnavailable, "not ready")
		}

		if err := sqlDB.PingContext(ctx); err != nil {
			util.LogFromContext(ctx).Error().Err(err).Msg("Database ping failed")
			return c.String(http.StatusServiceUnavailable, "not ready")
		}

		return c.String(http.StatusOK, "ready")
	}
}
