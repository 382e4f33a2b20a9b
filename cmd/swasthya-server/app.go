package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/Saurabhguptan007/swasthya-connect/internal/config"
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/conceptmap"
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/dualcoding"
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/terminology"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/consent"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/db"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/fhir"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/middleware"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/seed"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/telemetry"
)

const (
	serverName    = "swasthya-connect"
	serverVersion = "0.1.0"
)

// app holds the process-wide read-only state shared by the server and the
// CLI commands.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger

	pool    *pgxpool.Pool
	metrics *telemetry.Metrics

	terminology *terminology.Service
	translator  *conceptmap.Translator
	synthesizer *dualcoding.Synthesizer
}

// newLogger writes human-readable lines in development and JSON otherwise.
// Production drops the per-search debug lines.
func newLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.DebugLevel
	if cfg.IsProduction() {
		level = zerolog.InfoLevel
	}
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

// newApp loads the catalog and concept map, from Postgres when DATABASE_URL
// is set and from the seed file otherwise.
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{
		cfg:     cfg,
		logger:  logger,
		metrics: telemetry.NewMetrics("swasthya"),
	}

	var (
		catSrc terminology.CatalogSource
		mapSrc conceptmap.Source
	)
	if cfg.HasDatabase() {
		pool, err := db.NewPool(ctx, db.PoolConfig{URL: cfg.DatabaseURL, MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		a.pool = pool
		catSrc = terminology.NewCatalogRepoPG(pool)
		mapSrc = conceptmap.NewRepoPG(pool)
		logger.Info().Msg("loading terminology from database")
	} else {
		s, err := seed.Open(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		catSrc, mapSrc = s, s
		logger.Info().Str("seed_file", cfg.SeedFile).Msg("loading terminology from seed")
	}

	catalog, err := terminology.Load(ctx, cfg.CatalogVersion, catSrc)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	index, err := conceptmap.Load(ctx, cfg.TargetVersion, mapSrc)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load concept map: %w", err)
	}

	if orphans := index.Orphans(catalog.Contains); len(orphans) > 0 {
		logger.Warn().Strs("codes", orphans).Msg("concept map references codes missing from the catalog")
	}
	a.metrics.SetCatalogSize(catalog.Len(), index.Len())
	logger.Info().
		Int("catalog_entries", catalog.Len()).
		Int("mapped_sources", index.Len()).
		Str("catalog_version", cfg.CatalogVersion).
		Str("target_version", cfg.TargetVersion).
		Msg("terminology loaded")

	a.terminology = terminology.NewService(catalog, terminology.NewMatcher(catalog, cfg.SearchLimit), logger)
	a.terminology.SetMetrics(a.metrics)

	a.translator = conceptmap.NewTranslator(index, logger)
	a.translator.SetMetrics(a.metrics)

	a.synthesizer = dualcoding.NewSynthesizer(dualcoding.Config{
		CatalogVersion: cfg.CatalogVersion,
		TargetVersion:  cfg.TargetVersion,
		ObserverLabel:  cfg.ObserverLabel,
	}, consent.Noop{}, logger)
	a.synthesizer.SetMetrics(a.metrics)

	return a, nil
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// router builds the HTTP server with all routes and middleware.
func (a *app) router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(a.logger))
	e.Use(middleware.Recovery(a.logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(a.metrics.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: a.cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit("256K"))

	apiV1 := e.Group("/api/v1")
	fhirGroup := e.Group("/fhir")

	rl := middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: a.cfg.RateLimitRPS,
		BurstSize:         a.cfg.RateLimitBurst,
	})
	timeout := middleware.RequestTimeout(a.cfg.RequestTimeout)
	apiV1.Use(rl, timeout)
	fhirGroup.Use(rl, timeout)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": serverVersion,
		})
	})
	var pinger db.Pinger
	if a.pool != nil {
		pinger = a.pool
	}
	e.GET("/health/db", db.HealthHandler(pinger))
	e.GET("/metrics", a.metrics.Handler())

	terminology.NewHandler(a.terminology).RegisterRoutes(apiV1, fhirGroup)
	conceptmap.NewHandler(a.translator).RegisterRoutes(apiV1, fhirGroup)
	dualcoding.NewHandler(a.synthesizer, a.terminology, a.translator).RegisterRoutes(apiV1, fhirGroup)

	capBuilder := fhir.NewCapabilityBuilder(serverName, fmt.Sprintf("http://localhost:%s/fhir", a.cfg.Port), serverVersion)
	capBuilder.AddOperation("CodeSystem", "lookup", "http://hl7.org/fhir/OperationDefinition/CodeSystem-lookup")
	capBuilder.AddOperation("ValueSet", "expand", "http://hl7.org/fhir/OperationDefinition/ValueSet-expand")
	capBuilder.AddResource("ConceptMap", []string{"read", "search-type"}, nil)
	capBuilder.AddOperation("ConceptMap", "translate", "http://hl7.org/fhir/OperationDefinition/ConceptMap-translate")
	capBuilder.AddOperation("Condition", "dual-code", "https://swasthya-connect.in/fhir/OperationDefinition/Condition-dual-code")
	fhirGroup.GET("/metadata", capBuilder.Handler())

	return e
}
