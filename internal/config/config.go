package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const minSecretLength = 32

var ErrMisconfigured = errors.New("config invalid")

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Postgres PostgresConfig
}

type ServerConfig struct {
	Port        string
	Environment string
	LogLevel    string
}

type AuthConfig struct {
	JWTSecret    string
	JWTAlgorithm string
	JWTTTL       time.Duration
	BcryptCost   int
}

type CORSConfig struct {
	FrontendURL string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

// Load reads configuration from the environment. The JWT secret and the
// database coordinates are the only required values; everything else
// falls back to a development-friendly default.
func Load() (Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	if len(secret) < minSecretLength {
		return Config{}, fmt.Errorf("%w: JWT_SECRET must be at least %d characters", ErrMisconfigured, minSecretLength)
	}

	algorithm := getenv("JWT_ALGORITHM", "HS256")
	switch algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return Config{}, fmt.Errorf("%w: unsupported JWT_ALGORITHM %q", ErrMisconfigured, algorithm)
	}

	ttl, err := time.ParseDuration(getenv("JWT_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("%w: invalid JWT_TTL", ErrMisconfigured)
	}

	cost, err := strconv.Atoi(getenv("BCRYPT_COST", "12"))
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("%w: invalid BCRYPT_COST", ErrMisconfigured)
	}

	return Config{
		Server: ServerConfig{
			Port:        getenv("PORT", "8000"),
			Environment: getenv("ENVIRONMENT", "development"),
			LogLevel:    getenv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:    secret,
			JWTAlgorithm: algorithm,
			JWTTTL:       ttl,
			BcryptCost:   cost,
		},
		CORS: CORSConfig{
			FrontendURL: getenv("FRONTEND_URL", "http://localhost:3000"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}, nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
