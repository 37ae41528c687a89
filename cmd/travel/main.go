package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
	"travel/cfg"
	"travel/internal/booking"
	"travel/internal/favorites"
	"travel/internal/search"
	"travel/internal/settings"
	"travel/pkg/amadeus"
	"travel/pkg/cache"
	"travel/pkg/db"
	"travel/pkg/idgen"
	"travel/pkg/logger"
	"travel/pkg/telemetry"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

// @title           Travel Booking API
// @version         1.0
// @description     Agency resale service for flight and hotel offers.
// @BasePath        /
// @schemes         http
func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Otel
	// ============
	shutdownOtel, err := telemetry.Init(context.Background(), &config.Observability)
	if err != nil {
		log.Fatalf("failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(ctx); err != nil {
			log.Printf("failed to shutdown OpenTelemetry: %v", err)
		}
	}()

	// ============
	// Cache
	// ============
	redisAddr := config.RedisConfig.Host + ":" + config.RedisConfig.Port
	redis := cache.NewRedisCache(redisAddr, config.RedisConfig.Password)

	// ============
	// Database
	// ============
	sqlClient, err := db.NewSQLClient("postgres", config.PostgresConfig.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer sqlClient.Close()

	if err := db.RunMigrations(sqlClient.DB(), config.PostgresConfig.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// ============
	// ID generator
	// ============
	idGenerator, err := idgen.NewSnowflakeGenerator(config.SnowflakeNodeID)
	if err != nil {
		log.Fatalf("Failed to create ID generator: %v", err)
	}

	// ============
	// External Service
	// ============
	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}
	amadeusClient := amadeus.NewClient(httpClient,
		config.AmadeusConfig.BaseURL,
		config.AmadeusConfig.ClientID,
		config.AmadeusConfig.ClientSecret,
		zlogger,
	)

	// ============
	// Internal Service
	// ============
	settingsStore := settings.NewStore(sqlClient)
	settingsHandler := settings.NewHandler(settingsStore)

	searchStore := search.NewStore(sqlClient)
	searchSvc := search.NewService(searchStore, amadeusClient, settingsStore,
		redis, config.CacheTTLMinutes, idGenerator, zlogger)
	searchHandler := search.NewHandler(searchSvc)

	bookingStore := booking.NewStore(sqlClient)
	bookingSvc := booking.NewService(bookingStore, amadeusClient, settingsStore, idGenerator, zlogger)
	bookingHandler := booking.NewHandler(bookingSvc)

	favoriteStore := favorites.NewStore(sqlClient)
	favoriteHandler := favorites.NewHandler(favoriteStore, idGenerator)

	// ============
	// HTTP
	// ============
	r := gin.Default()
	r.Use(otelgin.Middleware(config.Observability.ServiceName))
	r.Use(traceLoggerMiddleware(zlogger))

	searchHandler.RegisterRoutes(r)
	settingsHandler.RegisterRoutes(r)
	bookingHandler.RegisterRoutes(r)
	favoriteHandler.RegisterRoutes(r)
	initSwagger(r)

	addr := fmt.Sprintf(":%s", config.AppPort)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// traceLoggerMiddleware logs each completed request with its trace identity
func traceLoggerMiddleware(zlogger logger.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logger.Field{
			{Key: "method", Value: c.Request.Method},
			{Key: "path", Value: c.FullPath()},
			{Key: "status", Value: c.Writer.Status()},
			{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			fields = append(fields,
				logger.Field{Key: "trace_id", Value: span.SpanContext().TraceID().String()},
				logger.Field{Key: "span_id", Value: span.SpanContext().SpanID().String()},
			)
		}

		zlogger.Info("request completed", fields...)
	}
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		html := `<!DOCTYPE html>
<html>
<head>
    <title>API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
    <script id="api-reference" data-url="/swagger/doc.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
		c.String(200, html)
	})
}
