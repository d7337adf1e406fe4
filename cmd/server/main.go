package main

import (
	"context"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	circlehandler "commune/internal/circle/handler"
	circleservice "commune/internal/circle/service"
	circlestore "commune/internal/circle/store"
	collectionhandler "commune/internal/collection/handler"
	collectionmetrics "commune/internal/collection/metrics"
	collectionservice "commune/internal/collection/service"
	collectionstore "commune/internal/collection/store"
	"commune/internal/draft/adapters"
	drafthandler "commune/internal/draft/handler"
	draftmetrics "commune/internal/draft/metrics"
	"commune/internal/draft/ports"
	draftservice "commune/internal/draft/service"
	draftstore "commune/internal/draft/store"
	httpapi "commune/internal/http"
	"commune/internal/jwt"
	"commune/internal/lookup"
	"commune/internal/platform/config"
	"commune/internal/platform/events"
	"commune/internal/platform/httpserver"
	"commune/internal/platform/logger"
	"commune/internal/platform/metrics"
	platformredis "commune/internal/platform/redis"
)

// main wires the verticals together. Stores and gating providers are chosen
// from configuration: in-process implementations by default, Redis, Postgres,
// Kafka and the external verifiers when their settings are present.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	var colStore collectionstore.Store
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		pg := collectionstore.NewPostgresStore(pool)
		if err := pg.Migrate(ctx); err != nil {
			log.Error("failed to migrate collection tables", "error", err)
			os.Exit(1)
		}
		colStore = pg
	} else {
		colStore = collectionstore.NewInMemoryStore()
	}

	var drafts ports.DraftStore
	var registry ports.LookupRegistry
	if redisClient != nil {
		defer redisClient.Close()
		drafts = draftstore.NewRedisStore(redisClient.Client)
		registry = lookup.NewRedisRegistry(redisClient.Client)
	} else {
		drafts = draftstore.NewInMemoryStore()
		registry = lookup.NewInMemoryRegistry()
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafkaPublisher(ctx, cfg.KafkaBrokers, events.WithLogger(log))
		if err != nil {
			log.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		defer kafka.Close(ctx)
		publisher = kafka
	}

	circles := circleservice.New(circlestore.NewInMemoryStore(), circleservice.WithLogger(log))
	collections := collectionservice.New(colStore, publisher,
		collectionservice.WithLogger(log),
		collectionservice.WithMetrics(collectionmetrics.New()),
	)

	wallets := adapters.NewWalletDirectory()
	var sybil ports.SybilService = adapters.StaticSybil{}
	if cfg.SybilScorerURL != "" {
		sybil = adapters.NewPassportSybil(cfg.SybilScorerURL, http.DefaultClient)
	}
	var captcha ports.CaptchaVerifier = adapters.StaticCaptcha{}
	if cfg.CaptchaSecret != "" {
		captcha = adapters.NewHCaptchaVerifier(cfg.CaptchaSecret, "", http.DefaultClient)
	}
	var claims ports.ClaimService = adapters.StaticClaimService{}
	if cfg.ClaimsBaseURL != "" {
		claims = adapters.NewHTTPClaimService(cfg.ClaimsBaseURL, http.DefaultClient)
	}

	draftSvc := draftservice.New(draftservice.Deps{
		Collections: collections,
		Drafts:      drafts,
		Wallet:      wallets,
		Sybil:       sybil,
		Roles:       adapters.NewCircleRoleGate(circles),
		Captcha:     captcha,
		Claims:      claims,
		Lookup:      registry,
		Records:     collections,
	},
		draftservice.WithLogger(log),
		draftservice.WithMetrics(draftmetrics.New()),
	)

	tokens := jwt.NewService(cfg.JWT)
	router := httpapi.NewRouter(httpapi.Deps{
		Logger:   log,
		Metrics:  metrics.New(),
		Sessions: tokens,
		Handlers: []httpapi.Registrar{
			circlehandler.New(circles, log, tokens),
			collectionhandler.New(collections, log, tokens),
			drafthandler.New(draftSvc, wallets, log, tokens),
		},
	})

	srv := httpserver.New(cfg.Server.Addr, router)
	log.Info("starting commune", "addr", cfg.Server.Addr)
	if err := httpserver.Run(srv, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
