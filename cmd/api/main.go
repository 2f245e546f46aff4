package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-reco-engine/internal/adapters/content"
	adapterHTTP "github.com/comitanigiacomo/kanso-reco-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-reco-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/workers"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	contentBaseURL := getEnv("CONTENT_BASE_URL", "https://content.kanso.app")
	contentDataset := getEnv("CONTENT_DATASET", "habits-v1")
	serverPort := getEnv("PORT", "8080")

	tokenSecret := os.Getenv("TOKEN_SECRET")
	if tokenSecret == "" {
		log.Fatal("Critical: TOKEN_SECRET is required")
	}

	taxonomy := services.NewTaxonomyService(domain.DefaultTaxonomy())
	if err := taxonomy.ValidateTaxonomy(); err != nil {
		log.Fatalf("Critical: goal taxonomy is misconfigured: %v", err)
	}

	var source domain.ContentSource = content.NewClient(contentBaseURL, contentDataset, 10*time.Second)

	var rdb *redis.Client
	var invalidator adapterHTTP.SourceInvalidator
	if host := os.Getenv("REDIS_HOST"); host != "" {
		client, err := cache.NewRedisClient(host, getEnv("REDIS_PORT", "6379"), os.Getenv("REDIS_PASSWORD"), 0)
		if err != nil {
			log.Printf("Redis unavailable, continuing without shared cache: %v", err)
		} else {
			defer client.Close()
			rdb = client
			cached := repository.NewCachedContentSource(source, client, services.DefaultCatalogTTL)
			source = cached
			invalidator = cached
			log.Println("Redis connected, shared content cache enabled.")
		}
	}

	var db *sqlx.DB
	var snapshots domain.SnapshotRepository
	if host := os.Getenv("DB_HOST"); host != "" {
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			host, getEnv("DB_PORT", "5432"), os.Getenv("DB_NAME"))

		conn, err := sqlx.Connect("pgx", dsn)
		if err != nil {
			log.Printf("Database unavailable, continuing without snapshot fallback: %v", err)
		} else {
			defer conn.Close()
			conn.SetMaxOpenConns(25)
			conn.SetMaxIdleConns(25)
			conn.SetConnMaxLifetime(5 * time.Minute)

			repo := repository.NewPostgresSnapshotRepository(conn)
			if err := repo.EnsureSchema(context.Background()); err != nil {
				log.Fatalf("Critical: %v", err)
			}
			db = conn
			snapshots = repo
			log.Println("Database connected, snapshot fallback enabled.")
		}
	}

	catalogService := services.NewCatalogService(source, snapshots, taxonomy, services.DefaultCatalogTTL)
	rankingService := services.NewRankingService(catalogService, services.DefaultRankingThresholds)
	recommendationService := services.NewRecommendationService(catalogService, taxonomy, services.DefaultRecommendationPolicy)
	tokenService := services.NewTokenService(tokenSecret, "kanso-reco-engine", 24*time.Hour)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	refreshWorker := workers.NewRefreshWorker(catalogService, domain.SupportedLanguages, services.DefaultCatalogTTL)
	refreshWorker.Start(workerCtx)
	refreshWorker.Enqueue(workers.RefreshJob{Reason: "startup warmup"})

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		RecommendationHandler: adapterHTTP.NewRecommendationHandler(recommendationService),
		RankingHandler:        adapterHTTP.NewRankingHandler(rankingService, taxonomy),
		TaxonomyHandler:       adapterHTTP.NewTaxonomyHandler(taxonomy),
		CatalogHandler:        adapterHTTP.NewCatalogHandler(catalogService, refreshWorker, invalidator),
		TokenService:          tokenService,
		DB:                    db,
		Redis:                 rdb,
		StartTime:             startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso Reco Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")
	workerCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
