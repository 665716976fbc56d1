package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blackLedger/config"
	"blackLedger/database"
	"blackLedger/routers"
	"blackLedger/scheduler"
	"blackLedger/scheduler/scheduler_jobs"
	"blackLedger/services/metricsService"
	"blackLedger/services/notifyService"
	"blackLedger/services/oddsService"
	"blackLedger/services/pickService"
	"blackLedger/services/xpService"

	"github.com/redis/go-redis/v9"
)

func main() {
	runNow := flag.Bool("run-now", false, "generate one batch of picks and exit")
	grade := flag.Bool("grade", false, "grade pending locked picks and exit")
	cleanup := flag.Bool("cleanup", false, "delete mock picks and exit")
	marker := flag.String("marker", pickService.MockMarker, "summary marker used by -cleanup")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	metrics := metricsService.NewMetrics()

	client := oddsService.NewClient(cfg.OddsAPIKey,
		oddsService.WithBaseURL(cfg.OddsAPIBaseURL),
		oddsService.WithTimeout(cfg.OddsHTTPTimeout),
		oddsService.WithRateLimit(cfg.OddsAPIRPS, 2),
		oddsService.WithCallLimit(cfg.OddsAPICallLimit),
	)

	backend, closeBackend, err := cacheBackend(cfg)
	if err != nil {
		log.Fatalf("Error creating odds cache: %v", err)
	}
	defer closeBackend()

	cache := oddsService.NewOddsCache(backend, client.FetchBestOdds, cfg.CacheTTL, nil)
	provider := oddsService.NewProvider(client, cache)
	store := pickService.NewGormPickStore(db)

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	genOpts := []pickService.Option{
		pickService.WithRand(rand.New(rand.NewSource(seed))),
		pickService.WithRecorder(metrics),
	}
	if cfg.DiscordBotToken != "" {
		session, err := notifyService.NewDiscordSession(cfg.DiscordBotToken)
		if err != nil {
			log.Fatalf("Error creating Discord session: %v", err)
		}
		genOpts = append(genOpts, pickService.WithNotifier(notifyService.NewDiscordNotifier(session, cfg.DiscordChannelID)))
	}

	generator := pickService.NewGenerator(provider, store, genOpts...)
	grader := xpService.NewGrader(xpService.NewGormStore(db), xpService.WithRecorder(metrics))
	jobs := scheduler_jobs.NewJobs(db, generator, grader, store, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case *runNow:
		if _, err := jobs.GeneratePicks(ctx); err != nil {
			log.Fatalf("Generation finished with errors: %v", err)
		}
		log.Printf("Odds API calls used: %d", client.CallsUsed())
		return
	case *grade:
		if _, err := jobs.GradePicks(ctx); err != nil {
			log.Fatalf("Grading failed: %v", err)
		}
		return
	case *cleanup:
		if _, err := jobs.CleanupMocks(ctx, *marker); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		return
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Error loading timezone: %v", err)
	}
	cronService, err := scheduler.SetupCron(jobs, db, loc)
	if err != nil {
		log.Fatalf("Error starting scheduler: %v", err)
	}

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routers.NewRouter(jobs, store, metrics.Handler(), nil),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 11 * time.Minute,
	}

	go func() {
		log.Printf("Black Ledger running on port %s. Press CTRL+C to exit.", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down gracefully...")

	// waits for a running job to finish
	<-cronService.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func cacheBackend(cfg *config.Config) (oddsService.CacheBackend, func(), error) {
	if cfg.CacheBackend != "redis" {
		return oddsService.NewFileBackend(cfg.CacheFile), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	return oddsService.NewRedisBackend(client), func() {
		if err := client.Close(); err != nil {
			log.Printf("Error closing redis: %v", err)
		}
	}, nil
}
