// Command display follows the event channel and prints a line per change,
// for a kitchen screen next to the order terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"restaurant/pkg/config"
	"restaurant/pkg/events"
	redisevents "restaurant/pkg/events/redis"
	"restaurant/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "display:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR not set")
	}
	log := logger.New(os.Stderr, cfg.Log.Level, "display", nil)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer rdb.Close()

	stream, err := redisevents.New(rdb, cfg.Redis.Channel).Subscribe(ctx)
	if err != nil {
		return err
	}
	log.Info(ctx, "following events", "addr", cfg.Redis.Addr, "channel", cfg.Redis.Channel)

	for e := range stream {
		render(os.Stdout, e)
	}
	return nil
}

func render(w io.Writer, e events.Event) {
	ts := e.At.Local().Format("15:04:05")
	switch {
	case e.Item != nil:
		fmt.Fprintf(w, "%s %-16s %s\n", ts, e.Type, e.Item)
	case e.Order != nil:
		fmt.Fprintf(w, "%s %-16s %s\n", ts, e.Type, e.Order.Describe())
	default:
		fmt.Fprintf(w, "%s %s\n", ts, e.Type)
	}
}
