package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// ClaimKeySize is the ChaCha20-Poly1305 key length in bytes.
	ClaimKeySize = 32
	// ClaimNonceSize is the ChaCha20-Poly1305 nonce length in bytes.
	ClaimNonceSize = 12
)

// NonceMode selects how claim ciphertexts are sealed.
type NonceMode string

const (
	// NonceModeRandom seals every claim under a fresh nonce carried in front of the ciphertext.
	NonceModeRandom NonceMode = "random"
	// NonceModeFixed seals every claim under SECRET_NONCE, matching the legacy wire format.
	NonceModeFixed NonceMode = "fixed"
)

var (
	ErrMissingClaimKey   = errors.New("SECRET_KEY must be set")
	ErrMissingClaimNonce = errors.New("SECRET_NONCE must be set")
	ErrInvalidClaimKey   = fmt.Errorf("SECRET_KEY must be exactly %d bytes", ClaimKeySize)
	ErrInvalidClaimNonce = fmt.Errorf("SECRET_NONCE must be exactly %d bytes", ClaimNonceSize)
	ErrInvalidNonceMode  = errors.New("CLAIM_NONCE_MODE must be \"random\" or \"fixed\"")
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Claim    ClaimConfig
	Audit    AuditConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	TimeoutMillis int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines password hashing parameters.
type AuthConfig struct {
	BcryptCost int
}

// AuditConfig controls where ledger events are recorded. An empty Stream
// keeps the audit trail in the logs only.
type AuditConfig struct {
	Stream             string
	MaxLen             int64
	WriteTimeoutMillis int
}

// ClaimConfig is the key material for access claims. It is loaded once and never mutated.
type ClaimConfig struct {
	Key       []byte
	Nonce     []byte
	NonceMode NonceMode
}

// Load reads configuration from environment variables, applying defaults where possible.
// Missing or malformed claim key material is an error: the service must not start without it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	claim, err := loadClaimConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "harmony"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:          getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:      os.Getenv("REDIS_PASSWORD"),
			DB:            redisDB,
			TimeoutMillis: getEnvAsInt("REDIS_TIMEOUT_MS", 1000),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			BcryptCost: getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Claim: claim,
		Audit: AuditConfig{
			Stream:             getEnv("AUDIT_STREAM", "harmony:ledger-events"),
			MaxLen:             int64(getEnvAsInt("AUDIT_STREAM_MAXLEN", 10000)),
			WriteTimeoutMillis: getEnvAsInt("AUDIT_WRITE_TIMEOUT_MS", 250),
		},
	}

	return cfg, nil
}

func loadClaimConfig() (ClaimConfig, error) {
	key, ok := os.LookupEnv("SECRET_KEY")
	if !ok || key == "" {
		return ClaimConfig{}, ErrMissingClaimKey
	}
	nonce, ok := os.LookupEnv("SECRET_NONCE")
	if !ok || nonce == "" {
		return ClaimConfig{}, ErrMissingClaimNonce
	}

	cfg := ClaimConfig{
		Key:       []byte(key),
		Nonce:     []byte(nonce),
		NonceMode: NonceMode(strings.ToLower(getEnv("CLAIM_NONCE_MODE", string(NonceModeRandom)))),
	}
	if err := cfg.Validate(); err != nil {
		return ClaimConfig{}, err
	}
	return cfg, nil
}

// Validate checks key and nonce lengths and the nonce mode.
func (c ClaimConfig) Validate() error {
	if len(c.Key) != ClaimKeySize {
		return fmt.Errorf("%w: got %d", ErrInvalidClaimKey, len(c.Key))
	}
	if len(c.Nonce) != ClaimNonceSize {
		return fmt.Errorf("%w: got %d", ErrInvalidClaimNonce, len(c.Nonce))
	}
	switch c.NonceMode {
	case NonceModeRandom, NonceModeFixed:
		return nil
	default:
		return ErrInvalidNonceMode
	}
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the dial and I/O timeout for Redis; zero keeps the client defaults.
func (r RedisConfig) Timeout() time.Duration {
	return millis(r.TimeoutMillis)
}

// WriteTimeout bounds a single audit stream append.
func (a AuditConfig) WriteTimeout() time.Duration {
	return millis(a.WriteTimeoutMillis)
}

func millis(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
