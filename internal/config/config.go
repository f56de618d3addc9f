package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/riskibarqy/season-engine/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string        `env:"APP_ENV" envDefault:"dev"`
	ServiceName        string        `env:"APP_SERVICE_NAME" envDefault:"season-engine"`
	ServiceVersion     string        `env:"APP_SERVICE_VERSION" envDefault:"dev"`
	HTTPAddr           string        `env:"APP_HTTP_ADDR" envDefault:":8080"`
	ReadTimeout        time.Duration `env:"APP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout       time.Duration `env:"APP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout    time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	LogLevelName       string        `env:"APP_LOG_LEVEL" envDefault:"info"`
	LogFormat          string        `env:"APP_LOG_FORMAT"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	StorageDriver           string        `env:"STORAGE_DRIVER" envDefault:"memory"`
	DBURL                   string        `env:"DB_URL"`
	DBDisablePreparedBinary bool          `env:"DB_DISABLE_PREPARED_BINARY_RESULT" envDefault:"true"`
	CatalogueCacheTTL       time.Duration `env:"CATALOGUE_CACHE_TTL" envDefault:"5m"`
	MigrationsDir           string        `env:"MIGRATIONS_DIR"`

	SeasonLeagueName     string `env:"SEASON_LEAGUE_NAME" envDefault:"Brasileirão"`
	SeasonSeed           int64  `env:"SEASON_SEED" envDefault:"0"`
	SeasonStartingBudget int64  `env:"SEASON_STARTING_BUDGET" envDefault:"50000000"`

	MatchEventDelay  time.Duration `env:"MATCH_EVENT_DELAY" envDefault:"2s"`
	MatchReviewDelay time.Duration `env:"MATCH_REVIEW_DELAY" envDefault:"3s"`

	CommentaryEnabled           bool          `env:"COMMENTARY_ENABLED" envDefault:"true"`
	CommentaryTimeout           time.Duration `env:"COMMENTARY_TIMEOUT" envDefault:"20s"`
	GeminiBaseURL               string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	GeminiAPIKey                string        `env:"GEMINI_API_KEY"`
	GeminiModel                 string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiTimeout               time.Duration `env:"GEMINI_TIMEOUT" envDefault:"15s"`
	GeminiMaxRetries            int           `env:"GEMINI_MAX_RETRIES" envDefault:"2"`
	GeminiCircuitEnabled        bool          `env:"GEMINI_CIRCUIT_ENABLED" envDefault:"true"`
	GeminiCircuitFailureCount   int           `env:"GEMINI_CIRCUIT_FAILURE_COUNT" envDefault:"5"`
	GeminiCircuitOpenTimeout    time.Duration `env:"GEMINI_CIRCUIT_OPEN_TIMEOUT" envDefault:"30s"`
	GeminiCircuitHalfOpenMaxReq int           `env:"GEMINI_CIRCUIT_HALF_OPEN_MAX_REQ" envDefault:"1"`
	ScoutCacheTTL               time.Duration `env:"SCOUT_CACHE_TTL" envDefault:"1h"`
	ProjectionRuns              int           `env:"PROJECTION_RUNS" envDefault:"1000"`
	ProjectionWorkers           int           `env:"PROJECTION_WORKERS" envDefault:"4"`
	UptraceEnabled              bool          `env:"UPTRACE_ENABLED" envDefault:"false"`
	UptraceDSN                  string        `env:"UPTRACE_DSN"`
	OTLPHeaders                 string        `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	PyroscopeEnabled            bool          `env:"PYROSCOPE_ENABLED" envDefault:"false"`
	PyroscopeServerAddress      string        `env:"PYROSCOPE_SERVER_ADDRESS"`
	PyroscopeAppName            string        `env:"PYROSCOPE_APP_NAME"`
	PyroscopeAuthToken          string        `env:"PYROSCOPE_AUTH_TOKEN"`
	PyroscopeBasicAuthUser      string        `env:"PYROSCOPE_BASIC_AUTH_USER"`
	PyroscopeBasicAuthPassword  string        `env:"PYROSCOPE_BASIC_AUTH_PASSWORD"`
	PyroscopeUploadRate         time.Duration `env:"PYROSCOPE_UPLOAD_RATE" envDefault:"15s"`

	LogLevel logging.Level `env:"-"`
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Load reads the process environment.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom reads configuration from vars instead of the process
// environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return load(env.Options{Environment: vars})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	appEnv, err := parseAppEnv(c.AppEnv)
	if err != nil {
		return err
	}
	c.AppEnv = appEnv

	level, err := logging.ParseLevel(c.LogLevelName)
	if err != nil {
		return fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}
	c.LogLevel = level

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "":
		c.LogFormat = "json"
		if c.AppEnv == EnvDev {
			c.LogFormat = "console"
		}
	case "json", "console":
	default:
		return fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are json, console", c.LogFormat)
	}

	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("APP_HTTP_ADDR is required")
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("APP_READ_TIMEOUT must be > 0")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("APP_WRITE_TIMEOUT must be > 0")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("APP_SHUTDOWN_TIMEOUT must be > 0")
	}
	c.CORSAllowedOrigins = trimAll(c.CORSAllowedOrigins)

	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.DBURL) == "" {
			return fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", c.StorageDriver, StorageMemory, StoragePostgres)
	}
	if c.CatalogueCacheTTL < 0 {
		return fmt.Errorf("CATALOGUE_CACHE_TTL must be >= 0")
	}

	if strings.TrimSpace(c.SeasonLeagueName) == "" {
		return fmt.Errorf("SEASON_LEAGUE_NAME is required")
	}
	if c.SeasonStartingBudget < 0 {
		return fmt.Errorf("SEASON_STARTING_BUDGET must be >= 0")
	}
	if c.MatchEventDelay < 0 {
		return fmt.Errorf("MATCH_EVENT_DELAY must be >= 0")
	}
	if c.MatchReviewDelay < 0 {
		return fmt.Errorf("MATCH_REVIEW_DELAY must be >= 0")
	}

	if c.CommentaryTimeout <= 0 {
		return fmt.Errorf("COMMENTARY_TIMEOUT must be > 0")
	}
	if c.GeminiTimeout <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT must be > 0")
	}
	if c.GeminiMaxRetries < 0 {
		return fmt.Errorf("GEMINI_MAX_RETRIES must be >= 0")
	}
	if c.GeminiCircuitFailureCount < 1 {
		return fmt.Errorf("GEMINI_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if c.GeminiCircuitOpenTimeout <= 0 {
		return fmt.Errorf("GEMINI_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	if c.GeminiCircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("GEMINI_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	if c.ScoutCacheTTL <= 0 {
		return fmt.Errorf("SCOUT_CACHE_TTL must be > 0")
	}
	if c.ProjectionRuns < 1 || c.ProjectionRuns > 100_000 {
		return fmt.Errorf("PROJECTION_RUNS must be within 1..100000")
	}
	if c.ProjectionWorkers < 1 {
		return fmt.Errorf("PROJECTION_WORKERS must be >= 1")
	}

	c.UptraceDSN = strings.TrimSpace(c.UptraceDSN)
	if c.UptraceDSN == "" {
		c.UptraceDSN = parseUptraceDSNFromOTLPHeaders(c.OTLPHeaders)
	}
	if c.UptraceEnabled && c.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if strings.TrimSpace(c.PyroscopeAppName) == "" {
		c.PyroscopeAppName = c.ServiceName
	}
	if c.PyroscopeEnabled && strings.TrimSpace(c.PyroscopeServerAddress) == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if c.PyroscopeUploadRate <= 0 {
		return fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	return nil
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
