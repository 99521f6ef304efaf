package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	supaauth "vetco/internal/adapters/auth/supabase"
	"vetco/internal/adapters/storage/postgres"
	"vetco/internal/migrations"
	"vetco/internal/platform/config"
	"vetco/internal/platform/logger"
	"vetco/internal/ports/auth"
	"vetco/internal/router"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	log := logger.NewFromEnv()
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		// En dev mode se tolera la falta de Supabase: sin verifier, el
		// middleware acepta X-Debug-User-ID.
		if !devMode || !errors.Is(err, config.ErrMissingSupabase) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Config{Port: "8080", AvatarsBucket: "avatars", MaxUploadMB: 5}
	}

	var (
		authn    auth.Authenticator
		verifier auth.AuthVerifier
	)
	if cfg.SupabaseURL != "" {
		client, err := supaauth.New(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			return fmt.Errorf("supabase client: %w", err)
		}
		authn = client
		if !devMode {
			verifier = client
		}
	} else {
		// Sin SUPABASE_URL no hay proveedor de identidad: las rutas de
		// cuenta responden 503 y la sesión sale de X-Debug-User-ID.
		log.Warn("no identity provider configured, account routes disabled")
	}

	var db *sql.DB
	if cfg.DatabaseDSN != "" {
		db, err = postgres.Open(cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		// Migraciones al arranque: el esquema siempre está listo antes de
		// aceptar tráfico, nunca DDL en caliente por request.
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		log.Info("migrations applied")
	} else {
		log.Warn("DB_DSN not set, using in-memory repositories")
	}

	handler := router.NewRouter(router.Options{
		Config:        cfg,
		Authenticator: authn,
		AuthVerifier:  verifier,
		DB:            db,
		Logger:        log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", zap.String("addr", cfg.Addr()), zap.Bool("dev", devMode))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
