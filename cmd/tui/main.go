// Command tui runs the simulation in-process and plays it in the terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/okian/boxshot/internal/adapters/tui"
	app "github.com/okian/boxshot/internal/app"
	"github.com/okian/boxshot/internal/config"
	"github.com/okian/boxshot/pkg/logger"
)

const logFileName = "boxshot-tui.log"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// The screen belongs to the renderer, so records go to a file.
	logPath := filepath.Join(os.TempDir(), logFileName)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		os.Stderr.WriteString("failed to open log file: " + err.Error() + "\n")
		return 1
	}
	defer logFile.Close()

	if err := logger.InitWithWriter(logFile); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	loggerInstance := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(loggerInstance.Named("service")),
		app.WithConfig(cfg),
	)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		os.Stderr.WriteString("failed to start: " + err.Error() + "\n")
		return 1
	}
	defer svc.Stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		loggerInstance.Error(ctx, "failed to create screen", logger.Error(err))
		return 1
	}
	if err := screen.Init(); err != nil {
		loggerInstance.Error(ctx, "failed to initialize screen", logger.Error(err))
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	var sound tui.Sound = tui.NopSound{}
	if beep, err := tui.NewBeepSound(); err != nil {
		// Non-fatal, the game runs without sound.
		loggerInstance.Warn(ctx, "audio unavailable", logger.Error(err))
	} else {
		defer beep.Close()
		sound = beep
	}

	ui := tui.New(screen, svc,
		tui.WithSound(sound),
		tui.WithExitDelay(cfg.ExitAnimation()),
		tui.WithLogger(loggerInstance.Named("tui")),
	)

	loggerInstance.Info(ctx, "terminal client started", logger.String("log_file", logPath))
	if err := ui.Run(ctx); err != nil {
		loggerInstance.Error(ctx, "terminal client stopped", logger.Error(err))
		return 1
	}
	loggerInstance.Info(ctx, "terminal client stopped")
	return 0
}
