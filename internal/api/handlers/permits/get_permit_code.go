package permits

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/odariane19-ui/permiscard/internal/api"
	"github.com/odariane19-ui/permiscard/internal/api/httperrors"
	"github.com/odariane19-ui/permiscard/internal/permit/record"
	"github.com/odariane19-ui/permiscard/internal/permit/transport"
	"github.com/odariane19-ui/permiscard/internal/types"
	"github.com/odariane19-ui/permiscard/internal/util"
)

func GetPermitCodeRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Permits.GET("/:id/code.png", getPermitCodeHandler(s))
}

// getPermitCodeHandler 将记录当前凭证渲染为可打印的二维码
func getPermitCodeHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		rec, err := s.Store.GetPermit(ctx, c.Param("id"))
		if err != nil {
			if errors.Is(err, record.ErrNotFound) {
				return httperrors.NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "Permit not found")
			}

			log.Error().Err(err).Msg("Failed to load permit record")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to load permit")
		}

		if rec.Credential == nil {
			return httperrors.NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "No credential issued for this permit")
		}

		uri := transport.ToURI(rec.Credential.PayloadEncoded, rec.Credential.Signature)

		png, err := transport.EncodePNG(uri, s.Config.Permit.QRCodeSize)
		if err != nil {
			log.Error().Err(err).Str("recordID", rec.ID).Msg("Failed to render optical code")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to render code")
		}

		return c.Blob(http.StatusOK, "image/png", png)
	}
}
