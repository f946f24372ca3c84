package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/pollbot/cliparse"
	"github.com/danielhkuo/pollbot/db"
	"github.com/danielhkuo/pollbot/notify"
	"github.com/danielhkuo/pollbot/polls"
	"github.com/danielhkuo/pollbot/router"
	"github.com/danielhkuo/pollbot/slackgw"
	"github.com/danielhkuo/pollbot/store"
)

func main() {
	var err error

	if err := cliparse.LoadEnvFile(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg))

	ids, err := store.NewIDGenerator(cfg.IDScheme)
	if err != nil {
		slog.Error("invalid ID scheme", "error", err)
		os.Exit(1)
	}
	pollStore := store.NewStore(store.WithIDGenerator(ids))
	tasks := notify.NewDispatcher(cfg.DeliveryTimeout)
	gateway := slackgw.New(cfg.BotToken, cfg.SlackAPIURL)

	opts := []polls.Option{polls.WithBotName(cfg.BotName)}

	// Optional audit journal
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		journal, err := db.NewJournal(dbConn, cfg.JournalSalt)
		if err != nil {
			slog.Error("journal setup failed", "error", err)
			os.Exit(1)
		}
		opts = append(opts, polls.WithJournal(journal))
		slog.Info("Journal ready", "type", cfg.DatabaseType)
	}

	ctrl := polls.NewController(pollStore, gateway, tasks, opts...)

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(ctrl, tasks, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "id_scheme", cfg.IDScheme)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	// Let queued message updates finish before exiting
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DeliveryTimeout+time.Second)
	defer cancel()
	if err := tasks.Drain(ctx); err != nil {
		slog.Warn("pending deliveries abandoned", "error", err)
	}
}

func newLogger(cfg cliparse.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	hopts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, hopts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, hopts))
}
