package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/senyabanana/tender-lifecycle/internal/db"
	"github.com/senyabanana/tender-lifecycle/internal/handlers"
	"github.com/senyabanana/tender-lifecycle/internal/logger"
	"github.com/senyabanana/tender-lifecycle/internal/repository"
	"github.com/senyabanana/tender-lifecycle/internal/router"
	"github.com/senyabanana/tender-lifecycle/internal/router/config"
	"github.com/senyabanana/tender-lifecycle/internal/services"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

type options struct {
	configPath     string
	skipMigrations bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	flags := pflag.NewFlagSet("tender-lifecycle", pflag.ContinueOnError)
	flags.StringVar(&opts.configPath, "config", ".", "directory containing app.env")
	flags.BoolVar(&opts.skipMigrations, "skip-migrations", false, "do not apply database migrations on startup")
	err := flags.Parse(args)
	return opts, err
}

func main() {
	bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		bootLog.Fatal().Err(err).Msg("invalid flags")
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("cannot load config")
	}

	log := logger.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !opts.skipMigrations {
		if err := db.RunMigrations(cfg.MigrationURL, cfg.PostgresConn, log); err != nil {
			log.Fatal().Err(err).Msg("cannot migrate database")
		}
	}

	dbPool, err := db.InitDb(log.WithContext(ctx), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing database")
	}
	defer dbPool.Close()

	tenderRepo := repository.NewPostgresTenderRepository(dbPool)
	responsibleRepo := repository.NewPostgresResponsibleRepository(dbPool)

	resolver := services.NewResolver(responsibleRepo)
	engine := services.NewLifecycleEngine(tenderRepo)
	tenderService := services.NewTenderService(resolver, engine)

	tenderHandler := handlers.NewTenderHandler(tenderService, cfg.RequestTimeout)
	ping := handlers.NewPingHandler(dbPool, cfg.RequestTimeout)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router.InitRoutes(tenderHandler, ping, log, cfg.CORSAllowedOrigins),
	}

	go func() {
		log.Info().Str("addr", cfg.ServerAddress).Msg("server is listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
