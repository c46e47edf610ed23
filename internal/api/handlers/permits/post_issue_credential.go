package permits

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/odariane19-ui/permiscard/internal/api"
	"github.com/odariane19-ui/permiscard/internal/api/httperrors"
	"github.com/odariane19-ui/permiscard/internal/permit/record"
	"github.com/odariane19-ui/permiscard/internal/types"
	"github.com/odariane19-ui/permiscard/internal/util"
)

func PostIssueCredentialRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Permits.POST("/:id/credential", postIssueCredentialHandler(s))
}

// postIssueCredentialHandler 为已有记录重新签发凭证，覆盖存储的载荷与签名
// 旧凭证在新鲜度窗口内仍可核验，之后自然失效
func postIssueCredentialHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		recordID := c.Param("id")

		rec, err := s.Store.GetPermit(ctx, recordID)
		if err != nil {
			if errors.Is(err, record.ErrNotFound) {
				return httperrors.NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "Permit not found")
			}

			log.Error().Err(err).Msg("Failed to load permit record")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to load permit")
		}

		cred, err := s.Signer.Issue(ctx, rec.ID)
		if err != nil {
			log.Error().Err(err).Str("recordID", rec.ID).Msg("Failed to issue credential")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to issue credential")
		}

		issued := &record.IssuedCredential{
			PayloadEncoded: cred.PayloadEncoded,
			Signature:      cred.Signature,
			IssuedAt:       cred.IssuedAt,
		}

		if err := s.Store.AttachCredential(ctx, rec.ID, issued); err != nil {
			log.Error().Err(err).Str("recordID", rec.ID).Msg("Failed to persist credential")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to persist credential")
		}

		log.Info().Str("recordID", rec.ID).Msg("Re-issued credential")

		return util.ValidateAndReturn(c, http.StatusOK, credentialResponse(rec.ID, issued))
	}
}
