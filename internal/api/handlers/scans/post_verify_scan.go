// Package scans exposes the verification entry point and the audit trail.
package scans

import (
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/odariane19-ui/permiscard/internal/api"
	"github.com/odariane19-ui/permiscard/internal/api/httperrors"
	"github.com/odariane19-ui/permiscard/internal/permit/scan"
	"github.com/odariane19-ui/permiscard/internal/types"
	"github.com/odariane19-ui/permiscard/internal/util"
)

func PostVerifyScanRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Scans.POST("", postVerifyScanHandler(s))
}

// postVerifyScanHandler 驱动一次扫码走到分类结果
// 在线与离线路径返回同一响应结构
func postVerifyScanHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostVerifyScanPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		result, err := s.Scanner.Scan(ctx, *body.Code, body.AgentID)
		if err != nil {
			if errors.Is(err, scan.ErrScanInFlight) {
				return httperrors.NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeGeneric, "Another scan is currently being verified")
			}

			log.Error().Err(err).Msg("Scan aborted")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Scan aborted")
		}

		response := &types.PostVerifyScanResponse{
			Result:  swag.String(string(result.Outcome.Result)),
			Message: swag.String(result.Outcome.Message),
		}

		if rec := result.Outcome.Record; rec != nil {
			response.Record = &types.VerifiedRecord{
				HolderName:     rec.HolderName,
				SerialNumber:   rec.SerialNumber,
				Zone:           rec.Zone,
				Type:           rec.Type,
				ExpirationDate: strfmt.DateTime(rec.ExpirationDate),
			}
		}

		s.Scanner.Reset()

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
