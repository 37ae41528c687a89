package cfg

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type PostgresConfig struct {
	DSN           string
	MigrationsDir string
}

type AmadeusConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

type ObservabilityConfig struct {
	OTLPEndpoint string
	ServiceName  string
	Environment  string
}

type Config struct {
	AppEnv          string
	AppPort         string
	RedisConfig     RedisConfig
	PostgresConfig  PostgresConfig
	AmadeusConfig   AmadeusConfig
	Observability   ObservabilityConfig
	CacheTTLMinutes int
	SnowflakeNodeID int64
}

func Load() (*Config, error) {
	var errs []error

	err := godotenv.Load()
	if err != nil {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)

	redisHost := mustEnv("REDIS_HOST", &errs)
	redisPort := mustEnv("REDIS_PORT", &errs)
	redisPassword := mustEnv("REDIS_PASSWORD", &errs)

	postgresDSN := mustEnv("POSTGRES_DSN", &errs)
	migrationsDir := mustEnv("MIGRATIONS_DIR", &errs)

	amadeusBaseURL := mustEnv("AMADEUS_BASE_URL", &errs)
	amadeusClientID := mustEnv("AMADEUS_CLIENT_ID", &errs)
	amadeusClientSecret := mustEnv("AMADEUS_CLIENT_SECRET", &errs)

	otlpEndpoint := mustEnv("OTLP_ENDPOINT", &errs)
	serviceName := mustEnv("OTEL_SERVICE_NAME", &errs)

	cacheTTLMinutes := mustEnv("CACHE_TTL_MINUTES", &errs)
	cacheTTLMinutesInt, err := strconv.Atoi(cacheTTLMinutes)
	if err != nil {
		errs = append(errs, errors.New("conversion failed env: "+"CACHE_TTL_MINUTES"))
	}

	snowflakeNodeID := mustEnv("SNOWFLAKE_NODE_ID", &errs)
	snowflakeNodeIDInt, err := strconv.ParseInt(snowflakeNodeID, 10, 64)
	if err != nil {
		errs = append(errs, errors.New("conversion failed env: "+"SNOWFLAKE_NODE_ID"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		RedisConfig: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		PostgresConfig: PostgresConfig{
			DSN:           postgresDSN,
			MigrationsDir: migrationsDir,
		},
		AmadeusConfig: AmadeusConfig{
			BaseURL:      amadeusBaseURL,
			ClientID:     amadeusClientID,
			ClientSecret: amadeusClientSecret,
		},
		Observability: ObservabilityConfig{
			OTLPEndpoint: otlpEndpoint,
			ServiceName:  serviceName,
			Environment:  appEnv,
		},
		CacheTTLMinutes: cacheTTLMinutesInt,
		SnowflakeNodeID: snowflakeNodeIDInt,
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}
