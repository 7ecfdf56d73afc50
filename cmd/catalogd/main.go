package main

import (
	"context"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/dvd-catalog/internal/handlers"
	"github.com/example/dvd-catalog/internal/library"
	"github.com/example/dvd-catalog/internal/library/storage"
	"github.com/example/dvd-catalog/internal/notify"
	"github.com/example/dvd-catalog/internal/omdb"
	"github.com/example/dvd-catalog/internal/platform/auth"
	"github.com/example/dvd-catalog/internal/platform/config"
	"github.com/example/dvd-catalog/internal/platform/db"
	"github.com/example/dvd-catalog/internal/platform/httpserver"
	"github.com/example/dvd-catalog/internal/platform/logging"
	"github.com/example/dvd-catalog/internal/platform/natsconn"
	"github.com/example/dvd-catalog/internal/platform/run"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	var store library.Store
	switch cfg.Storage.Driver {
	case "sqlite":
		s, err := storage.OpenSQLite(cfg.Storage.SQLitePath, cfg.LibraryID)
		if err != nil {
			log.Error("open sqlite store", zap.Error(err))
			run.Exit(1)
		}
		defer func() { _ = s.Close() }()
		store = s
	case "postgres":
		pool, err := db.Open(ctx)
		if err != nil {
			log.Error("db open", zap.Error(err))
			run.Exit(1)
		}
		defer pool.Close()
		pg := storage.NewPostgres(pool, cfg.LibraryID)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("ensure schema", zap.Error(err))
			run.Exit(1)
		}
		store = pg
	default: // memory
		store = storage.NewMemory()
	}

	var notifier library.Notifier = notify.Noop{}
	var events handlers.EventEmitter
	if cfg.NATSURL != "" {
		nc, err := natsconn.Connect(natsconn.Options{URL: cfg.NATSURL})
		if err != nil {
			log.Error("nats connect", zap.Error(err))
			run.Exit(1)
		}
		defer nc.Close()
		pub := notify.NewNATS(log, nc)
		notifier = pub
		events = pub
	}

	lib := library.New(library.Options{
		ID:       cfg.LibraryID,
		Store:    store,
		Notifier: notifier,
		Provider: omdb.New(cfg.OMDB.BaseURL),
		APIKey:   cfg.OMDB.APIKey,
		Logger:   log,
	})
	lib.Load(ctx)

	registry := library.NewRegistry()
	registry.Register(lib)

	r := chi.NewRouter()
	httpserver.SetupRouter(r)

	h := &handlers.Handler{
		Log:       log,
		Registry:  registry,
		ImportDir: cfg.ImportDir,
		Events:    events,
	}

	if cfg.AdminJWTSecret != "" {
		verifier := auth.JWTVerifier{Secret: []byte(cfg.AdminJWTSecret)}
		h.Mount(r, auth.RequireUser(verifier), auth.RequireAdmin)
	} else {
		h.Mount(r)
	}

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, ServiceName: cfg.ServiceName, Logger: log, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			_ = srv.Shutdown(context.Background())
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}
