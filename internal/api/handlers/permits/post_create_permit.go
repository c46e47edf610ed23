package permits

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/odariane19-ui/permiscard/internal/api"
	"github.com/odariane19-ui/permiscard/internal/api/httperrors"
	"github.com/odariane19-ui/permiscard/internal/permit/record"
	"github.com/odariane19-ui/permiscard/internal/types"
	"github.com/odariane19-ui/permiscard/internal/util"
)

func PostCreatePermitRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Permits.POST("", postCreatePermitHandler(s))
}

// postCreatePermitHandler 一步完成记录创建与首张凭证签发
// 新建的许可立即可打印
func postCreatePermitHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostCreatePermitPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		rec := &record.Record{
			ID:             uuid.New().String(),
			HolderName:     *body.HolderName,
			SerialNumber:   *body.SerialNumber,
			Zone:           *body.Zone,
			Type:           *body.Type,
			ExpirationDate: time.Time(*body.ExpirationDate),
		}

		if err := s.Store.SavePermit(ctx, rec); err != nil {
			log.Error().Err(err).Msg("Failed to save permit record")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to create permit")
		}

		cred, err := s.Signer.Issue(ctx, rec.ID)
		if err != nil {
			log.Error().Err(err).Str("recordID", rec.ID).Msg("Failed to issue credential")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to issue credential")
		}

		rec.Credential = &record.IssuedCredential{
			PayloadEncoded: cred.PayloadEncoded,
			Signature:      cred.Signature,
			IssuedAt:       cred.IssuedAt,
		}

		if err := s.Store.AttachCredential(ctx, rec.ID, rec.Credential); err != nil {
			log.Error().Err(err).Str("recordID", rec.ID).Msg("Failed to persist credential")
			return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to persist credential")
		}

		log.Info().Str("recordID", rec.ID).Msg("Created permit and issued credential")

		return util.ValidateAndReturn(c, http.StatusCreated, permitResponse(rec))
	}
}
