// cmd/prospect-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"prospect-dashboard/internal/api"
	"prospect-dashboard/internal/bootstrap"
	"prospect-dashboard/internal/common/camunda"
	"prospect-dashboard/internal/common/config"
	"prospect-dashboard/internal/common/database"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/common/observability"
	"prospect-dashboard/internal/models"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if err := run(cfg, log); err != nil {
		zapLog.Fatal("prospect server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting prospect server", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	obs := observability.New(cfg.Observability, log)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(shutdownCtx)
	}()

	backends, err := database.Connect(cfg.Database, log)
	if err != nil {
		return err
	}
	defer backends.Close()

	if len(backends.Enabled()) > 0 {
		err = retryWithBackoff(ctx, func() error {
			_, err := backends.Check(ctx)
			return err
		}, 10, 2*time.Second, log, "Backend connection")
		if err != nil {
			return err
		}
		log.Info("Backends connected successfully", nil)
	}

	svc, err := bootstrap.Service(ctx, cfg, backends, log)
	if err != nil {
		return err
	}

	snap, err := svc.Generate(ctx, models.GenerationMode(cfg.Generator.Mode), cfg.Generator.Count)
	if err != nil {
		return fmt.Errorf("startup snapshot: %w", err)
	}
	log.Info("Startup snapshot ready", map[string]interface{}{
		"snapshotId": snap.ID,
		"count":      len(snap.Prospects),
	})

	readinessBackends := backends.Enabled()

	var workers []*camunda.Worker
	if cfg.Camunda.Enabled {
		var zeebe *camunda.Client
		err = retryWithBackoff(ctx, func() error {
			var err error
			zeebe, err = camunda.NewClient(camunda.ConfigFrom(cfg.Camunda))
			return err
		}, 10, 2*time.Second, log, "Zeebe client initialization")
		if err != nil {
			return err
		}
		defer zeebe.Close()
		log.Info("Zeebe client connected successfully", nil)

		workers, err = startWorkers(zeebe, cfg, svc, obs, log)
		if err != nil {
			return err
		}
		readinessBackends = append(readinessBackends, zeebe)
	}

	server := api.New(svc, cfg, log,
		api.WithObservability(obs),
		api.WithReadiness(func(ctx context.Context) (map[string]string, error) {
			return database.CheckAll(ctx, readinessBackends...)
		}),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		for _, w := range workers {
			w.Stop()
		}
		return nil
	})

	err = g.Wait()
	log.Info("Prospect server stopped", nil)
	return err
}
