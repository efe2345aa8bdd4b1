package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lomba-poster/internal/config"
	"lomba-poster/internal/db"
	"lomba-poster/internal/logger"
	"lomba-poster/internal/repository"
	"lomba-poster/internal/server"
	"lomba-poster/internal/service"
	"lomba-poster/internal/service/moderation"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().Bool("migrate", false, "apply pending schema migrations before serving")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.IsProduction())

	database, err := config.NewPostgresDB(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
		if err := db.Migrate(cmd.Context(), database); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = config.NewRedisClient(cfg)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, running without cache and with in-memory likes")
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	filter, err := loadFilter(cfg.ModerationWordsPath, log)
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(database)
	services := service.NewServices(repos, cache, filter, cfg)
	app := server.New(cfg, services, log)

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"port":        cfg.Port,
			"environment": cfg.Environment,
		}).Info("server starting")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(ctx)
}

func loadFilter(path string, log *logrus.Logger) (*moderation.Filter, error) {
	if path == "" {
		log.Warn("MODERATION_WORDS_PATH not set, comment moderation disabled")
		return moderation.New()
	}
	filter, err := moderation.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load moderation words: %w", err)
	}
	log.WithField("words", filter.Len()).Info("moderation filter loaded")
	return filter, nil
}
