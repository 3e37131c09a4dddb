package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/wordsphere/wordsphere/api"
	"github.com/wordsphere/wordsphere/config"
	"github.com/wordsphere/wordsphere/metrics"
	"github.com/wordsphere/wordsphere/scraper"
	"github.com/wordsphere/wordsphere/services"
)

func main() {
	envFile := flag.String("env", ".env", "Path to environment file")
	addr := flag.String("addr", "", "Listen address, overrides PORT")
	logLevel := flag.String("log-level", "", "Log level, overrides LOG_LEVEL")
	flag.Parse()

	logger := logrus.New()

	if err := godotenv.Load(*envFile); err != nil {
		logger.Warnf("Error loading env file %s: %v", *envFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *logLevel != "" {
		cfg.Server.LogLevel = *logLevel
	}

	level, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Fatalf("Invalid log level %q: %v", cfg.Server.LogLevel, err)
	}
	logger.SetLevel(level)
	if cfg.Server.Env == config.Production {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	sc := scraper.New(services.DefaultHTTPClient(), logger, scraper.Config{
		UserAgent:        cfg.Scrape.UserAgent,
		MinContentLength: cfg.Scrape.MinContentLength,
		MaxBodyBytes:     cfg.Scrape.MaxBodyBytes,
	})

	srv := api.NewServer(cfg, logger, sc)
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	metrics.SetBuildInfo(api.Version)
	stopMetrics := make(chan struct{})
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UpdateSystemMetrics()
			case <-stopMetrics:
				return
			}
		}
	}()

	go func() {
		logger.Infof("Listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Infof("Received signal %v, shutting down", sig)
	close(stopMetrics)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown error: %v", err)
	}
	logger.Info("Shutdown complete")
}
