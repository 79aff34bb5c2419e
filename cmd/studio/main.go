package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thirdcoast.systems/clipstudio/cmd/studio/internal/web"
	"thirdcoast.systems/clipstudio/internal/application"
	"thirdcoast.systems/clipstudio/internal/config"
	"thirdcoast.systems/clipstudio/internal/db"
	"thirdcoast.systems/clipstudio/internal/render"
	"thirdcoast.systems/clipstudio/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting studio service")

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(logLevel(conf.LogLevel))

	encMgr, err := application.InitEncryptionManager(conf)
	if err != nil {
		slog.Error("failed to initialize encryption manager", "error", err)
		os.Exit(1)
	}

	files, err := application.InitStorage(conf)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}

	dbc, err := db.New(application.DatabasePath(conf), slog.Default())
	if err != nil {
		slog.Error("failed to open job catalog", "error", err)
		os.Exit(1)
	}
	defer dbc.Close()

	store := render.NewStore(dbc.Conn())
	pool := render.NewPool(store, files, slog.Default(), conf.RenderWorkers, conf.OutputWidth, conf.OutputHeight)
	pool.Start(ctx)

	sessions := session.NewManager(slog.Default())
	sessions.StartSweeper(ctx, session.DefaultIdleTimeout)

	e, err := web.NewWebserver(conf, dbc, encMgr, sessions, store, pool)
	if err != nil {
		slog.Error("failed to create webserver", "error", err)
		os.Exit(1)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "addr", conf.ListenAddr)
	if err := e.Start(conf.ListenAddr); err != nil {
		// Echo returns an error on Shutdown; treat it as normal if context is done.
		if ctx.Err() != nil {
			return
		}
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
