package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	contactsvc "phonebook/internal/contacts/service"
	contactstore "phonebook/internal/contacts/store/contact"
	identitysvc "phonebook/internal/identity/service"
	userstore "phonebook/internal/identity/store/user"
	"phonebook/internal/platform/config"
	"phonebook/internal/platform/httpserver"
	"phonebook/internal/platform/logger"
	"phonebook/internal/platform/metrics"
	"phonebook/internal/storage/mongo"
	"phonebook/internal/token"
	httptransport "phonebook/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()

	ctx := context.Background()
	client, db, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongo.Disconnect(client); err != nil {
			log.Error("failed to disconnect from mongodb", "error", err)
		}
	}()

	users := userstore.NewMongo(db)
	contacts := contactstore.NewMongo(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Error("failed to create user indexes", "error", err)
		os.Exit(1)
	}
	if err := contacts.EnsureIndexes(ctx); err != nil {
		log.Error("failed to create contact indexes", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	tokens := token.New(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
	identity := identitysvc.New(users, tokens, log, m)
	phonebook := contactsvc.New(contacts, log, m)

	if err := identity.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Error("failed to seed admin account", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(
		httptransport.NewAuthHandler(identity, log),
		httptransport.NewPhonebookHandler(phonebook, log),
		tokens,
		log,
		m,
	)
	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting phonebook server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server error", "error", err)
		os.Exit(1)
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
