package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/odariane19-ui/permiscard/internal/config"
	"github.com/odariane19-ui/permiscard/internal/permit/audit"
	"github.com/odariane19-ui/permiscard/internal/permit/cache"
	"github.com/odariane19-ui/permiscard/internal/permit/keys"
	"github.com/odariane19-ui/permiscard/internal/permit/scan"
	"github.com/odariane19-ui/permiscard/internal/permit/signer"
	"github.com/odariane19-ui/permiscard/internal/permit/storage"
	"github.com/odariane19-ui/permiscard/internal/permit/verifier"
	"github.com/odariane19-ui/permiscard/internal/util"
)

type Router struct {
	Routes       []*echo.Route
	Root         *echo.Group
	APIV1Permits *echo.Group
	APIV1Scans   *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config config.Server
	DB     *gorm.DB
	Clock  time2.Clock

	// permit services
	Keychain    *keys.Keychain
	Store       storage.Store
	Cache       cache.Store
	AuditLogger audit.Logger
	Signer      signer.Service
	Verifier    verifier.Service
	Scanner     *scan.Orchestrator
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	db *gorm.DB,
	clock time2.Clock,
	keychain *keys.Keychain,
	store storage.Store,
	cacheStore cache.Store,
	auditLogger audit.Logger,
	signerService signer.Service,
	verifierService verifier.Service,
	scanner *scan.Orchestrator,
) *Server {
	return &Server{
		Config:      cfg,
		DB:          db,
		Clock:       clock,
		Keychain:    keychain,
		Store:       store,
		Cache:       cacheStore,
		AuditLogger: auditLogger,
		Signer:      signerService,
		Verifier:    verifierService,
		Scanner:     scanner,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.DB != nil {
		log.Debug().Msg("Closing database connection")

		if sqlDB, err := s.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close database connection")
				errs = append(errs, err)
			}
		}
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
