package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "restaurant/docs"
	"restaurant/pkg/config"
	"restaurant/pkg/events"
	redisevents "restaurant/pkg/events/redis"
	"restaurant/pkg/logger"
	menumem "restaurant/pkg/menu/memory"
	ordermem "restaurant/pkg/order/memory"
	"restaurant/pkg/otel"
	"restaurant/pkg/restaurant"
)

// @title Restaurant API
// @version 1.0
// @description API for managing a restaurant menu and customer orders
// @host localhost:8443
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "restaurant:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(os.Stdout, cfg.Log.Level, "restaurant", otel.GetTraceID)
	defer log.Sync()
	ctx := context.Background()

	tp, shutdownTracing, err := otel.InitTracing(log, otel.Config{
		ServiceName: "restaurant",
		Host:        cfg.OTel.Host,
		Probability: cfg.OTel.Probability,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdownTracing(context.Background())

	var pub events.Publisher = events.Nop{}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn(ctx, "redis unavailable, events will fail to publish", "addr", cfg.Redis.Addr, "error", err)
		}
		pub = redisevents.New(rdb, cfg.Redis.Channel)
		log.Info(ctx, "publishing events", "addr", cfg.Redis.Addr, "channel", cfg.Redis.Channel)
	}

	svc := restaurant.New(menumem.New(), ordermem.New(), pub, log, restaurant.Policy{
		LockCompleted: cfg.Orders.LockCompleted,
	})
	h := &handlers{svc: svc, log: log}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           newRouter(h, tp.Tracer("restaurant")),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", srv.Addr, "tls", cfg.HTTP.TLS())
		if cfg.HTTP.TLS() {
			serverErrors <- srv.ListenAndServeTLS(cfg.HTTP.TLSCert, cfg.HTTP.TLSKey)
			return
		}
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info(ctx, "shutdown", "signal", sig.String())
		sctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			srv.Close()
			return fmt.Errorf("graceful shutdown: %w", err)
		}
	}
	return nil
}
