package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App         AppConfig
	Postgres    PostgresConfig
	Redis       RedisConfig
	Logger      LoggerConfig
	Auth        AuthConfig
	Ticketing   TicketingConfig
	Display     DisplayConfig
	Remediation RemediationConfig
	OrgService  OrgServiceConfig
	Dashboard   DashboardConfig
	Views       ViewConfig
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
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines bearer token verification parameters.
type AuthConfig struct {
	JWTSecret string
}

// TicketingConfig points at the external helpdesk API.
type TicketingConfig struct {
	BaseURL        string
	APIKey         string
	PageSize       int
	TimeoutSeconds int
	DemoMode       bool
}

// DisplayConfig controls how dates are rendered for the dashboard.
type DisplayConfig struct {
	DateLayout string
	Timezone   string
}

// RemediationConfig holds the serverless assistant endpoints.
type RemediationConfig struct {
	QueryURL       string
	ExecuteURL     string
	TimeoutSeconds int
}

// OrgServiceConfig holds the org-management endpoint.
type OrgServiceConfig struct {
	URL            string
	TimeoutSeconds int
}

// DashboardConfig controls chart summary computation and caching.
type DashboardConfig struct {
	MaxPages        int
	CacheTTLSeconds int
	RefreshCron     string
	OrgUnits        []string
}

// ViewConfig controls ticket view session lifetime.
type ViewConfig struct {
	IdleTTLMinutes int
	SweepCron      string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "secops-dashboard"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 45),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", "dev-secret"),
		},
		Ticketing: TicketingConfig{
			BaseURL:        strings.TrimRight(os.Getenv("TICKETING_BASE_URL"), "/"),
			APIKey:         os.Getenv("TICKETING_API_KEY"),
			PageSize:       getEnvAsInt("TICKETING_PAGE_SIZE", 20),
			TimeoutSeconds: getEnvAsInt("TICKETING_TIMEOUT_SECONDS", 30),
			DemoMode:       getEnvAsBool("TICKETING_DEMO_MODE", false),
		},
		Display: DisplayConfig{
			DateLayout: getEnv("DISPLAY_DATE_LAYOUT", "Jan 2, 2006"),
			Timezone:   getEnv("DISPLAY_TIMEZONE", "UTC"),
		},
		Remediation: RemediationConfig{
			QueryURL:       os.Getenv("REMEDIATION_QUERY_URL"),
			ExecuteURL:     os.Getenv("REMEDIATION_EXECUTE_URL"),
			TimeoutSeconds: getEnvAsInt("REMEDIATION_TIMEOUT_SECONDS", 60),
		},
		OrgService: OrgServiceConfig{
			URL:            os.Getenv("ORG_SERVICE_URL"),
			TimeoutSeconds: getEnvAsInt("ORG_SERVICE_TIMEOUT_SECONDS", 30),
		},
		Dashboard: DashboardConfig{
			MaxPages:        getEnvAsInt("DASHBOARD_MAX_PAGES", 5),
			CacheTTLSeconds: getEnvAsInt("DASHBOARD_CACHE_TTL_SECONDS", 300),
			RefreshCron:     getEnv("DASHBOARD_REFRESH_CRON", "@every 5m"),
			OrgUnits:        getEnvAsList("DASHBOARD_ORG_UNITS"),
		},
		Views: ViewConfig{
			IdleTTLMinutes: getEnvAsInt("VIEW_IDLE_TTL_MINUTES", 30),
			SweepCron:      getEnv("VIEW_SWEEP_CRON", "@every 10m"),
		},
	}

	if !cfg.Ticketing.DemoMode && cfg.Ticketing.BaseURL == "" {
		return nil, fmt.Errorf("TICKETING_BASE_URL is required unless TICKETING_DEMO_MODE is set")
	}
	if cfg.Ticketing.PageSize <= 0 {
		return nil, fmt.Errorf("invalid TICKETING_PAGE_SIZE: %d", cfg.Ticketing.PageSize)
	}
	if _, err := time.LoadLocation(cfg.Display.Timezone); err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE: %w", err)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	return seconds(a.RequestTimeoutSeconds)
}

// Timeout bounds a single ticketing API call.
func (t TicketingConfig) Timeout() time.Duration {
	return seconds(t.TimeoutSeconds)
}

// Timeout bounds a single assistant call.
func (r RemediationConfig) Timeout() time.Duration {
	return seconds(r.TimeoutSeconds)
}

// Timeout bounds a single org-management call.
func (o OrgServiceConfig) Timeout() time.Duration {
	return seconds(o.TimeoutSeconds)
}

// Location resolves the display timezone, falling back to UTC.
func (d DisplayConfig) Location() *time.Location {
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CacheTTL returns how long a dashboard summary stays cached.
func (d DashboardConfig) CacheTTL() time.Duration {
	return seconds(d.CacheTTLSeconds)
}

// IdleTTL returns how long an untouched view session survives.
func (v ViewConfig) IdleTTL() time.Duration {
	if v.IdleTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(v.IdleTTLMinutes) * time.Minute
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
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

func getEnvAsList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
