package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/odariane19-ui/permiscard/internal/api"
	"github.com/odariane19-ui/permiscard/internal/api/handlers/common"
	"github.com/odariane19-ui/permiscard/internal/api/handlers/permits"
	"github.com/odariane19-ui/permiscard/internal/api/handlers/scans"
)

// AttachAllRoutes attaches all registered routes to the server's router.
func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		common.GetHealthzRoute(s),
		common.GetReadyzRoute(s),
		permits.PostCreatePermitRoute(s),
		permits.GetPermitRoute(s),
		permits.PostIssueCredentialRoute(s),
		permits.GetPermitCodeRoute(s),
		permits.GetPublicKeyRoute(s),
		scans.PostVerifyScanRoute(s),
		scans.GetScanLogsRoute(s),
	}
}
