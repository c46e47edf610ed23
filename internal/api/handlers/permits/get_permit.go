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

func GetPermitRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Permits.GET("/:id", getPermitHandler(s))
}

// getPermitHandler 返回完整记录
// 取记录用于展示或打印时同步写入核验缓存，设备之后可离线核验该卡
func getPermitHandler(s *api.Server) echo.HandlerFunc {
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

		if err := s.Cache.Put(ctx, rec); err != nil {
			log.Warn().Err(err).Str("recordID", rec.ID).Msg("Failed to cache record snapshot")
		}

		return util.ValidateAndReturn(c, http.StatusOK, permitResponse(rec))
	}
}
