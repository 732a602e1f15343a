package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"smileaudit/internal/adapters/cse"
	"smileaudit/internal/adapters/fetch"
	server "smileaudit/internal/adapters/http_server"
	"smileaudit/internal/adapters/observability"
	"smileaudit/internal/adapters/places"
	"smileaudit/internal/adapters/rediscache"
	"smileaudit/internal/app"
	"smileaudit/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// deps
	fetcher := fetch.New(cfg.HTTPTimeout, cfg.UserAgent)
	placesCl := places.New(cfg.PlacesBase, cfg.PlacesKey, cfg.PlacesRPS, cfg.HTTPTimeout)
	searchCl := cse.New(cfg.CSEBase, cfg.CSEKey, cfg.CSECX, cfg.HTTPTimeout)
	cache := rediscache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewAuditService(fetcher, placesCl, searchCl, cache, cfg.CacheTTL)

	// http; one audit does several upstream calls, so the request timeout is
	// a multiple of the per-call timeout
	srv := server.New(6 * cfg.HTTPTimeout)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{A: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
