package permits

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/odariane19-ui/permiscard/internal/api"
	"github.com/odariane19-ui/permiscard/internal/api/httperrors"
	"github.com/odariane19-ui/permiscard/internal/types"
	"github.com/odariane19-ui/permiscard/internal/util"
)

func GetPublicKeyRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Permits.GET("/public-key", getPublicKeyHandler(s))
}

// getPublicKeyHandler 导出核验公钥供设备建立信任
// 私钥永不对外提供
func getPublicKeyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		pemKey, err := s.Keychain.PublicPEM()
		if err != nil {
			util.LogFromContext(ctx).Error().Err(err).Msg("Failed to export public key")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to export public key")
		}

		response := &types.GetPublicKeyResponse{
			PublicKey: swag.String(pemKey),
			Algorithm: "Ed25519",
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
