package autoplay

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/boxshot/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging sends log records to stdout and a file. If logFile is
// empty, a timestamped filename is generated.
func SetupLogging(logFile string) (io.Closer, error) {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "autoplay_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.InitWithWriter(io.MultiWriter(os.Stdout, file)); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return file, nil
}

// ShowHelp prints usage information for the autoplay tool.
func ShowHelp() {
	os.Stdout.WriteString(`boxshot autoplay
================

Plays the game over HTTP by shooting the smallest square on screen.

Usage:
  go run ./cmd/autoplay [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -rounds int
        Number of rounds to play (default 3)
  -interval duration
        Delay between shots (default 150ms)
  -timeout duration
        HTTP request timeout (default 5s)
  -max-round duration
        Give up on a round that runs longer than this (default 5m)
  -log string
        Log file for run output (default: autoplay_TIMESTAMP.log)
  -verbose
        Log every shot
  -help
        Show this help message

Examples:
  # Play three rounds against a local server
  go run ./cmd/autoplay

  # Play ten fast rounds and log every shot
  go run ./cmd/autoplay -rounds 10 -interval 50ms -verbose
`)
}
