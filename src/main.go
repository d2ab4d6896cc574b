package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expense-tracker/src/api"
	"expense-tracker/src/auth"
	"expense-tracker/src/config"
	"expense-tracker/src/db"
	"expense-tracker/src/db/local"
	"expense-tracker/src/ingest"
	"expense-tracker/src/store"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Invalid timezone: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		txns     store.TransactionStore
		provider auth.Provider
	)
	switch cfg.DataBackend {
	case config.BackendLocal:
		s, err := local.Open(cfg.LocalDBPath, local.WithLocation(loc))
		if err != nil {
			log.Fatalf("Local store failed: %v", err)
		}
		defer s.Close()
		txns = s
		provider = auth.NewLocalProvider(s, cfg.BcryptCost)
		log.Printf("INFO: Using local backend at %s", cfg.LocalDBPath)

	default:
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatalf("DB migration failed: %v", err)
		}
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		defer pool.Close()
		pg := db.NewPostgresStore(pool)
		txns = pg
		provider = auth.NewJWTProvider(pg, cfg.JWTSecret, auth.WithTokenTTL(cfg.TokenTTL), auth.WithBcryptCost(cfg.BcryptCost))
		log.Printf("INFO: Using postgres backend")
	}

	if cfg.CacheEnabled {
		cache, err := db.NewCache()
		if err != nil {
			log.Fatalf("failed to initialize cache: %v", err)
		}
		defer cache.Close()
		txns = db.NewCachedStore(txns, cache)
	}

	router := api.NewRouter(api.Deps{
		Auth:           provider,
		Transactions:   txns,
		Ingest:         ingest.NewService(txns, loc),
		Now:            func() time.Time { return time.Now().In(loc) },
		AllowedOrigins: cfg.AllowedOrigins,
		Demo:           cfg.DemoMode,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("ERROR: Graceful shutdown failed: %v", err)
		}
	}()

	log.Println("API server running on port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
