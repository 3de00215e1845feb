package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "weighttrack/internal/adapter/http"
	"weighttrack/internal/adapter/locale"
	"weighttrack/internal/adapter/memory"
	"weighttrack/internal/adapter/notify"
	"weighttrack/internal/adapter/postgres"
	"weighttrack/internal/adapter/sqlite"
	"weighttrack/internal/app"
	"weighttrack/internal/config"
	"weighttrack/internal/domain"
	"weighttrack/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// store is what every backend provides.
type store interface {
	domain.AccountRepository
	domain.WeightRepository
	domain.PreferenceRepository
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(os.Stderr, "info", false).Fatal().Err(err).Msg("config")
	}
	log := logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Pretty)

	db, sessions, err := openStore(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Kind).Msg("db open")
	}
	defer func() { _ = db.Close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sender, err := newSender(cfg.Notify, log, reg)
	if err != nil {
		log.Fatal().Err(err).Msg("notify sender")
	}

	var hint domain.LocaleHint = locale.FromEnv()
	if cfg.Locale != "" {
		hint = locale.New(cfg.Locale)
	}

	authSvc := app.NewAuthService(db, sessions, nil)
	prefSvc := app.NewPreferenceService(db, hint)
	notifySvc := app.NewNotifyService(db, notify.Permission(cfg.Notify.Enabled), sender, cfg.Notify.AlertAddress, log)
	srv, err := adapthttp.New(adapthttp.Services{
		Auth:    authSvc,
		Weights: app.NewWeightService(db, notifySvc, prefSvc),
		Goals:   app.NewGoalService(db, db),
		Prefs:   prefSvc,
	}, log, reg)
	if err != nil {
		log.Fatal().Err(err).Msg("http server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	purge := cron.New()
	if _, err := purge.AddFunc(cfg.SessionPurgeCron, func() {
		n, err := authSvc.PurgeExpiredSessions(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("session purge failed")
			return
		}
		log.Debug().Int64("removed", n).Msg("expired sessions purged")
	}); err != nil {
		log.Fatal().Err(err).Msg("session purge schedule")
	}
	purge.Start()
	defer purge.Stop()

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.HTTP.Addr).Str("store", cfg.Store.Kind).Msg("listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("listen")
	}
}

func openStore(cfg config.StoreConfig) (store, domain.SessionRepository, error) {
	switch cfg.Kind {
	case config.StorePostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return db, postgres.NewSessionRepo(db), nil
	case config.StoreMemory:
		db := memory.New()
		return db, db.NewSessionRepo(), nil
	default:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, sqlite.NewSessionRepo(db), nil
	}
}

// newSender posts to the SMS gateway when one is configured and logs the
// message otherwise. Deliveries are counted in reg.
func newSender(cfg config.NotifyConfig, log zerolog.Logger, reg prometheus.Registerer) (domain.Sender, error) {
	var next domain.Sender = notify.NewLogSender(log)
	if cfg.GatewayURL != "" {
		next = notify.NewWebhookSender(cfg.GatewayURL, cfg.GatewayToken)
	}
	return notify.NewInstrumented(next, reg)
}
