package scans

import (
	"net/http"
	"strconv"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/odariane19-ui/permiscard/internal/api"
	"github.com/odariane19-ui/permiscard/internal/api/httperrors"
	"github.com/odariane19-ui/permiscard/internal/permit/storage"
	"github.com/odariane19-ui/permiscard/internal/types"
	"github.com/odariane19-ui/permiscard/internal/util"
)

func GetScanLogsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Scans.GET("/logs", getScanLogsHandler(s))
}

// getScanLogsHandler 查询只追加的扫描审计记录，按时间倒序
func getScanLogsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		filter := &storage.ScanLogFilter{
			CredentialID: c.QueryParam("credential_id"),
			AgentID:      c.QueryParam("agent_id"),
			Outcome:      c.QueryParam("outcome"),
			Mode:         c.QueryParam("mode"),
		}

		if v := c.QueryParam("limit"); v != "" {
			limit, err := strconv.Atoi(v)
			if err != nil || limit < 0 {
				return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid limit")
			}
			filter.Limit = limit
		}

		if v := c.QueryParam("offset"); v != "" {
			offset, err := strconv.Atoi(v)
			if err != nil || offset < 0 {
				return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid offset")
			}
			filter.Offset = offset
		}

		entries, err := s.Store.QueryScanLogs(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("Failed to query scan logs")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to query scan logs")
		}

		// total 统计匹配过滤器的全部行数，而非当前页
		total, err := s.Store.CountScanLogs(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("Failed to count scan logs")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to query scan logs")
		}

		response := &types.GetScanLogsResponse{
			Entries: make([]*types.GetScanLogsResponseEntriesItems0, 0, len(entries)),
			Total:   total,
		}

		for _, entry := range entries {
			item := &types.GetScanLogsResponseEntriesItems0{
				Timestamp: (*strfmt.DateTime)(swag.Time(entry.Timestamp)),
				Outcome:   swag.String(entry.Outcome),
				Mode:      swag.String(entry.Mode),
				Message:   entry.Message,
			}
			if entry.CredentialID != nil {
				item.CredentialID = *entry.CredentialID
			}
			if entry.AgentID != nil {
				item.AgentID = *entry.AgentID
			}

			response.Entries = append(response.Entries, item)
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
