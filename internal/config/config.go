package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/straye-as/sales-target-api/internal/secrets"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Engine    EngineConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	// ConnectRetries is how many times startup retries the initial connection
	ConnectRetries int
	// ConnectRetryDelay is the pause between connection attempts (seconds)
	ConnectRetryDelay int
}

// AuthConfig holds bearer token and API key settings
type AuthConfig struct {
	// JWTSecret is the HMAC key used to verify bearer tokens
	JWTSecret string
	// JWTIssuer, when set, must match the token's iss claim
	JWTIssuer string
	// APIKey grants admin access to service clients via the x-api-key header
	APIKey string
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	// AllowedOrigins is a list of allowed origins; "*" allows all
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	// MaxAge is the max age (in seconds) for preflight cache
	MaxAge int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	// FrameOptions sets X-Frame-Options (DENY, SAMEORIGIN, or empty to disable)
	FrameOptions       string
	ContentTypeNosniff bool
	ReferrerPolicy     string
	PermissionsPolicy  string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute applies per IP to unauthenticated requests
	RequestsPerMinute int
	// RequestsPerMinuteAuth applies per user to authenticated requests
	RequestsPerMinuteAuth int
	WhitelistIPs          []string
	WhitelistPaths        []string
}

// CacheConfig configures the redis roll-up cache
type CacheConfig struct {
	Enabled bool
	// URL takes precedence over Host/Port/DB when set (redis://...)
	URL      string
	Host     string
	Port     int
	Password string
	DB       int
	// TTL is how long a cached roll-up stays valid (seconds)
	TTL       int
	KeyPrefix string
}

// EngineConfig tunes roll-up computation
type EngineConfig struct {
	// MaxConcurrency bounds the number of scopes computed in parallel
	MaxConcurrency int
}

// JobsConfig configures background jobs
type JobsConfig struct {
	CacheWarmEnabled bool
	// CacheWarmSchedule is a six-field cron expression (with seconds)
	CacheWarmSchedule string
	// CacheWarmTimeout bounds a single warm run (seconds)
	CacheWarmTimeout int
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ConnectRetryDelayDuration returns the pause between connection attempts
func (d *DatabaseConfig) ConnectRetryDelayDuration() time.Duration {
	return time.Duration(d.ConnectRetryDelay) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// TTLDuration returns the cache TTL as duration
func (c *CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// CacheWarmTimeoutDuration returns the warm job timeout as duration
func (j *JobsConfig) CacheWarmTimeoutDuration() time.Duration {
	return time.Duration(j.CacheWarmTimeout) * time.Second
}

// Load loads configuration from file and environment variables.
// Secrets are not fetched from vault; use LoadWithSecrets for that.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.APIKey == "" {
		cfg.Auth.APIKey = v.GetString("ADMIN_API_KEY")
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = v.GetString("JWT_SECRET")
	}
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}
	if cfg.Cache.URL == "" {
		cfg.Cache.URL = v.GetString("REDIS_URL")
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves secrets from Azure Key
// Vault when USE_AZURE_KEY_VAULT=true and the environment is staging or
// production. Otherwise secrets come from the environment.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	logger.Info("Loading secrets from Azure Key Vault",
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)
	applySecrets(ctx, cfg, provider, logger)
	logger.Info("Secrets loaded from vault successfully")

	return cfg, nil
}

// secretBinding maps a vault secret (with env fallback) onto a config field
type secretBinding struct {
	vaultName string
	envName   string
	target    *string
}

func applySecrets(ctx context.Context, cfg *Config, provider *secrets.Provider, logger *zap.Logger) {
	bindings := []secretBinding{
		{vaultName: "POSTGRES-MAIN-HOST", envName: "DATABASE_HOST", target: &cfg.Database.Host},
		{vaultName: "POSTGRES-MAIN-USER", envName: "DATABASE_USER", target: &cfg.Database.User},
		{vaultName: "POSTGRES-MAIN-PASSWORD", envName: "DATABASE_PASSWORD", target: &cfg.Database.Password},
		{vaultName: "sales-target-jwt-secret", envName: "JWT_SECRET", target: &cfg.Auth.JWTSecret},
		{vaultName: "admin-api-key", envName: "ADMIN_API_KEY", target: &cfg.Auth.APIKey},
		{vaultName: "REDIS-PASSWORD", envName: "REDIS_PASSWORD", target: &cfg.Cache.Password},
	}

	for _, b := range bindings {
		value, err := provider.GetSecretOrEnv(ctx, b.vaultName, b.envName)
		if err != nil {
			logger.Warn("Secret not resolved, keeping configured value",
				zap.String("secret", b.vaultName),
				zap.Error(err),
			)
			continue
		}
		if value != "" {
			*b.target = value
		}
	}

	// Database name varies per environment and is never stored in vault
	if defaultDB := os.Getenv("DEFAULT_DATABASE"); defaultDB != "" {
		cfg.Database.Name = defaultDB
	}
	if sslMode := os.Getenv("DATABASE_SSLMODE"); sslMode != "" {
		cfg.Database.SSLMode = sslMode
	}
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Straye Sales Target API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "sales_targets")
	v.SetDefault("database.user", "sales_user")
	v.SetDefault("database.password", "sales_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)
	v.SetDefault("database.connectRetries", 5)
	v.SetDefault("database.connectRetryDelay", 2)

	// Auth defaults
	v.SetDefault("auth.jwtIssuer", "")

	// Secrets defaults
	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	// CORS defaults - restrictive by default
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults
	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 240)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready"})

	// Roll-up cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.host", "localhost")
	v.SetDefault("cache.port", 6379)
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", 300)
	v.SetDefault("cache.keyPrefix", "sales-target")

	// Engine defaults
	v.SetDefault("engine.maxConcurrency", 8)

	// Job defaults
	v.SetDefault("jobs.cacheWarmEnabled", false)
	v.SetDefault("jobs.cacheWarmSchedule", "0 */15 * * * *")
	v.SetDefault("jobs.cacheWarmTimeout", 120)
}
