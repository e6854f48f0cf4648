package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/propscan/propscan/internal/business/scraper"
	"github.com/propscan/propscan/internal/platform/config"
	apirouter "github.com/propscan/propscan/internal/platform/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.Kitchen})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load", "err", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)

	fetcher := scraper.NewHTTPFetcher(cfg.HTTPTimeout, cfg.HTTPRetries, cfg.RetryBackoff)
	scr := scraper.New(fetcher, cfg.ListingBaseURL, cfg.ScrapeWorkers)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: apirouter.NewRouter(scr),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()
	slog.Info("server listening", "port", cfg.Port, "site", cfg.ListingBaseURL)

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "err", err)
	}
	slog.Info("server exited")
}
