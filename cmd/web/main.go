package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/bookshelf/bookshelf-web/internal/apiclient"
	"github.com/bookshelf/bookshelf-web/internal/config"
	"github.com/bookshelf/bookshelf-web/internal/credential"
	"github.com/bookshelf/bookshelf-web/internal/crypto"
	"github.com/bookshelf/bookshelf-web/internal/handler"
	"github.com/bookshelf/bookshelf-web/internal/logger"
	"github.com/bookshelf/bookshelf-web/internal/service"
	"github.com/bookshelf/bookshelf-web/internal/view"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.Env)

	store, closeStore := openStore(cfg)
	defer closeStore()

	renderer, err := view.New()
	if err != nil {
		log.Fatal().Err(err).Msg("load templates")
	}

	client := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)

	appCtx, stop := context.WithCancel(context.Background())
	defer stop()

	router := handler.NewRouter(appCtx, handler.Deps{
		Store:         store,
		Auth:          handler.NewAuthHandler(service.NewAuthService(client), renderer),
		Books:         handler.NewBookHandler(service.NewBookService(client, cfg.PageSize), renderer),
		Profile:       handler.NewProfileHandler(service.NewProfileService(client), renderer),
		AuthRateRPS:   cfg.AuthRateRPS,
		AuthRateBurst: cfg.AuthRateBurst,
		TrustProxy:    cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("api", cfg.APIBaseURL).
			Str("credential_store", cfg.CredentialStore).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced shutdown")
		closeStore()
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

// openStore builds the credential store named by CREDENTIAL_STORE. The
// returned func releases any database handle.
func openStore(cfg config.Config) (credential.Store, func()) {
	sealer := crypto.NewSealer(cfg.CookieSecret)
	opts := credential.DefaultCookieOptions()
	opts.Secure = cfg.CookieSecure

	switch cfg.CredentialStore {
	case "cookie":
		return credential.NewCookieStore(sealer, opts), func() {}
	case "mysql", "sqlite":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := credential.OpenDB(ctx, cfg.CredentialStore, cfg.DatabaseDSN)
		if err != nil {
			log.Fatal().Err(err).Str("driver", cfg.CredentialStore).Msg("open credential database")
		}
		return credential.NewDBStore(db, sealer, opts), func() { db.Close() }
	default:
		log.Fatal().Str("credential_store", cfg.CredentialStore).Msg("unknown credential store")
		return nil, nil
	}
}
