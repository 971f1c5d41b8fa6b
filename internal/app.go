package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"quranbot/internal/controllers"
	"quranbot/internal/providers"
	"quranbot/internal/services"
	"quranbot/internal/structures"
	"quranbot/internal/twitter"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	// Posted reports whether the one-shot cycle published a verse. A false
	// value is not an error: quota and interval skips are expected outcomes.
	Posted bool
}

func NewApp(
	scheduler services.SchedulerInterface,
	engine services.PostingServiceInterface,
	publisher twitter.PublisherInterface,
	healthController *controllers.HealthController,
	conf *structures.Config,
	logger providers.Logger,
) (*App, error) {
	defer logger.Close()

	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)
	if err := scheduler.Restore(); err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	app := &App{}

	if conf.DryRun {
		text, err := engine.DryRun()
		if err != nil {
			return nil, fmt.Errorf("dry run: %w", err)
		}
		fmt.Println(text)
		return app, nil
	}

	if !conf.Daemon {
		posted, err := engine.AttemptPost()
		if err != nil {
			return nil, err
		}
		app.Posted = posted
		return app, nil
	}

	if username, err := publisher.Verify(); err != nil {
		logger.Warnf(providers.TypePublish, "Credential check failed: %s", err)
	} else {
		logger.Infof(providers.TypePublish, "Connected as @%s", username)
	}

	var opsServer *http.Server
	if conf.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", healthController.Health)
		mux.Handle("/metrics", promhttp.Handler())

		opsServer = &http.Server{
			Addr:         conf.Metrics.Listen,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			logger.Infof(providers.TypeApp, "Ops endpoint listening on %s", conf.Metrics.Listen)
			if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Errorf(providers.TypeApp, "Ops server error: %s", err)
			}
		}()
	}

	scheduler.Init()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Infof(providers.TypeApp, "Shutdown signal received")

	scheduler.Stop()

	if opsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := opsServer.Shutdown(ctx); err != nil {
			return nil, err
		}
	}

	if err := scheduler.Persist(); err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
