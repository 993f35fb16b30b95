/*
Package main is the entry point for the Socket Chat Server.

It loads configuration, initializes the global logging system, wires the
registry and router, starts the TCP chat listener (and the optional ops HTTP
listener), and handles operating system interrupt signals for a graceful
shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/sabihanjum/Socket-Chat-Server/internal/app/chat"
	"github.com/sabihanjum/Socket-Chat-Server/internal/app/server"
	"github.com/sabihanjum/Socket-Chat-Server/internal/configs"
	"github.com/sabihanjum/Socket-Chat-Server/internal/handler"
	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/limiter"
	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/logx"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.Init(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Int("admin_port", cfg.AdminPort).
		Dur("idle_timeout", cfg.IdleTimeout).
		Int("outbox_size", cfg.OutboxSize).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := chat.NewRegistry()
	stats := chat.NewStats()
	router := chat.NewRouter(registry, stats)
	connLimiter := limiter.NewIPRateLimiter(rate.Limit(cfg.ConnectRate), cfg.ConnectBurst)

	var adminSrv *http.Server
	if cfg.AdminPort > 0 {
		adminSrv = &http.Server{
			Addr: fmt.Sprintf(":%d", cfg.AdminPort),
			Handler: handler.Router(&handler.AppDeps{
				Config:  cfg,
				Chat:    router,
				Stats:   stats,
				Limiter: connLimiter,
			}),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		go func() {
			logx.Info("Ops listener starting", "addr", adminSrv.Addr)
			if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logx.Fatal(err, "Ops listener failed")
			}
		}()
	}

	chatSrv := server.New(cfg, router, stats, connLimiter)
	if err := chatSrv.ListenAndServe(ctx); err != nil {
		logx.Fatal(err, "Chat server failed")
	}

	// ListenAndServe returns after the interrupt: sessions are closed and
	// drained; only the ops listener is left to stop.
	if adminSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := adminSrv.Shutdown(shutdownCtx); err != nil {
			logx.Error(err, "Ops listener forced to shutdown")
		}
	}

	logx.Info("Server gracefully stopped.")
}
