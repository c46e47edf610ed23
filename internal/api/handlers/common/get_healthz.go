package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odariane19-ui/permiscard/internal/api"
)

func GetHealthzRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/healthz", getHealthzHandler(s))
}

// getHealthzHandler only reports process liveness; see readyz for
// dependency checks.
func getHealthzHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
}
