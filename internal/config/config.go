package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	MigrateOnStart bool
	SeedOnStart    bool
	// DefaultTenantID receives the seeded reference data.
	DefaultTenantID int64

	SnowflakeNode int64
}

// Load loads configuration from the environment and an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_SERVICE", "careadmin")
	v.SetDefault("APP_VERSION", "0.1.0")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_EXPORTER_PROTOCOL", "grpc")
	v.SetDefault("OTEL_SAMPLING_RATIO", 1.0)
	v.SetDefault("DATABASE_TYPE", "postgres")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_NAME", "careadmin")
	v.SetDefault("DATABASE_USER", "careadmin")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_IDLE_CONN", 5)
	v.SetDefault("DATABASE_MAX_OPEN_CONN", 25)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", 1800)
	v.SetDefault("DATABASE_CONN_MAX_IDLE_TIME", 300)
	v.SetDefault("MIGRATE_ON_START", true)
	v.SetDefault("SEED_ON_START", false)
	v.SetDefault("DEFAULT_TENANT_ID", 1)
	v.SetDefault("SNOWFLAKE_NODE", 1)

	return Config{
		AppName:     v.GetString("APP_SERVICE"),
		AppVersion:  v.GetString("APP_VERSION"),
		Environment: v.GetString("ENVIRONMENT"),

		LogLevel:  strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat: strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),

		OtelEnabled:          v.GetBool("OTEL_ENABLED"),
		OtelExporterEndpoint: strings.TrimSpace(v.GetString("OTEL_EXPORTER_ENDPOINT")),
		OtelExporterProtocol: strings.ToLower(strings.TrimSpace(v.GetString("OTEL_EXPORTER_PROTOCOL"))),
		OtelSamplingRatio:    v.GetFloat64("OTEL_SAMPLING_RATIO"),

		DBType:            v.GetString("DATABASE_TYPE"),
		DBHost:            v.GetString("DATABASE_HOST"),
		DBPort:            v.GetString("DATABASE_PORT"),
		DBName:            v.GetString("DATABASE_NAME"),
		DBUser:            v.GetString("DATABASE_USER"),
		DBPassword:        v.GetString("DATABASE_PASSWORD"),
		DBSSLMode:         v.GetString("DATABASE_SSLMODE"),
		DBMaxIdleConn:     v.GetInt("DATABASE_MAX_IDLE_CONN"),
		DBMaxOpenConn:     v.GetInt("DATABASE_MAX_OPEN_CONN"),
		DBConnMaxLifetime: v.GetInt("DATABASE_CONN_MAX_LIFETIME"),
		DBConnMaxIdleTime: v.GetInt("DATABASE_CONN_MAX_IDLE_TIME"),

		MigrateOnStart:  v.GetBool("MIGRATE_ON_START"),
		SeedOnStart:     v.GetBool("SEED_ON_START"),
		DefaultTenantID: v.GetInt64("DEFAULT_TENANT_ID"),

		SnowflakeNode: v.GetInt64("SNOWFLAKE_NODE"),
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Module wires application configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
)
