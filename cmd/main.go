package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"lol-match-core/internal"
)

func main() {
	_ = godotenv.Load()

	cfg, err := internal.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := internal.NewLogger(cfg)
	metrics := internal.NewMetricsCollector(logger)
	rateLimiter := internal.NewRateLimiter(cfg, logger)
	riotClient := internal.NewRiotAPIClient(cfg, logger, metrics)

	if cfg.RiotAPIKey == "" {
		// The endpoint reports the misconfiguration per request; still worth
		// one loud line at startup.
		logger.Warn("riot_api_key_missing").
			Component("main").
			Operation("startup").
			Log()
	}

	var publisher internal.EventPublisher
	if cfg.NATSUrl != "" {
		natsClient, err := internal.NewNATSClient(cfg, logger)
		if err != nil {
			log.Fatalf("Error connecting to NATS: %v", err)
		}
		defer natsClient.Close()

		if _, err := natsClient.StartAuditWorker(); err != nil {
			log.Fatalf("Error starting audit worker: %v", err)
		}
		publisher = natsClient
	}

	history := internal.NewHistoryService(cfg, riotClient, publisher, logger)

	internal.NewProfiler(cfg, logger).Start()

	mw := internal.NewLoggingMiddleware(logger, metrics)
	http.HandleFunc("/healthz", mw.Handler(internal.HealthHandler(logger)))
	http.HandleFunc("/match-history", mw.Handler(internal.MatchHistoryHandler(history, rateLimiter, logger)))
	http.HandleFunc("/metrics", mw.Handler(internal.MetricsHandler(logger, metrics)))

	logger.Info("server_started").
		Component("main").
		Operation("startup").
		Meta("port", cfg.AppPort).
		Meta("region", cfg.RiotRegion).
		Log()

	if err := http.ListenAndServe(":"+cfg.AppPort, nil); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
