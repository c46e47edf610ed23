package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/odariane19-ui/permiscard/internal/util"
)

// EchoServer holds the HTTP listener settings.
type EchoServer struct {
	ListenAddress                  string
	HideInternalServerErrorDetails bool
}

// Database holds the authority-side PostgreSQL connection settings.
type Database struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	SSLMode  string
}

// ConnectionString assembles a DSN in the form the postgres driver expects.
func (d Database) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.Username, d.Password, d.Database, d.SSLMode)
}

// Logger holds the zerolog settings.
type Logger struct {
	Level              zerolog.Level
	PrettyPrintConsole bool
}

// Permit holds the credential protocol settings.
type Permit struct {
	// SigningKeyFile is the PKCS#8 PEM file holding the Ed25519 private key.
	// Generated on first start when missing.
	SigningKeyFile string
	// MaxCredentialAge is the freshness window: credentials whose issuance
	// timestamp is older than this are rejected regardless of record state.
	MaxCredentialAge time.Duration
	// OnlineVerifyTimeout bounds the authority lookup during online
	// verification; on expiry the orchestrator falls back to the cache.
	OnlineVerifyTimeout time.Duration
	// CacheDatabaseFile is the SQLite file backing the verification cache.
	CacheDatabaseFile string
	// QRCodeSize is the pixel edge length of rendered optical codes.
	QRCodeSize int
}

// Server is the root configuration, assembled once at startup.
type Server struct {
	Echo     EchoServer
	Database Database
	Logger   Logger
	Permit   Permit
}

// DefaultServiceConfigFromEnv returns the server config with all values
// taken from the environment (an optional .env file is loaded first),
// falling back to development defaults.
func DefaultServiceConfigFromEnv() Server {
	// ignore missing .env, the environment may be fully provided externally
	_ = godotenv.Load()

	return Server{
		Echo: EchoServer{
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
		},
		Database: Database{
			Host:     util.GetEnv("PGHOST", "localhost"),
			Port:     util.GetEnvAsInt("PGPORT", 5432),
			Username: util.GetEnv("PGUSER", "permiscard"),
			Password: util.GetEnv("PGPASSWORD", ""),
			Database: util.GetEnv("PGDATABASE", "permiscard"),
			SSLMode:  util.GetEnv("PGSSLMODE", "disable"),
		},
		Logger: Logger{
			Level:              parseLogLevel(util.GetEnv("SERVER_LOGGER_LEVEL", "info")),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Permit: Permit{
			SigningKeyFile:      util.GetEnv("PERMIT_SIGNING_KEY_FILE", "permiscard_signing_key.pem"),
			MaxCredentialAge:    util.GetEnvAsDuration("PERMIT_MAX_CREDENTIAL_AGE", 24*time.Hour),
			OnlineVerifyTimeout: util.GetEnvAsDuration("PERMIT_ONLINE_VERIFY_TIMEOUT", 3*time.Second),
			CacheDatabaseFile:   util.GetEnv("PERMIT_CACHE_DATABASE_FILE", "permiscard_cache.db"),
			QRCodeSize:          util.GetEnvAsInt("PERMIT_QR_CODE_SIZE", 256),
		},
	}
}

func parseLogLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}

	return level
}
