package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/boxshot/internal/autoplay"
)

// Default configuration constants.
const (
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", autoplay.DefaultBaseURL, "Base URL of the service")
		rounds   = flag.Int("rounds", autoplay.DefaultRounds, "Number of rounds to play")
		interval = flag.Duration("interval", autoplay.DefaultInterval, "Delay between shots")
		timeout  = flag.Duration("timeout", autoplay.DefaultTimeout, "HTTP request timeout")
		maxRound = flag.Duration("max-round", autoplay.DefaultMaxRound, "Give up on a round that runs longer than this")
		logFile  = flag.String("log", "", "Log file for run output (default: autoplay_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Log every shot")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		autoplay.ShowHelp()
		return
	}

	closer, err := autoplay.SetupLogging(*logFile)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	config := &autoplay.Config{
		BaseURL:  *baseURL,
		Rounds:   *rounds,
		Interval: *interval,
		Timeout:  *timeout,
		MaxRound: *maxRound,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	if _, err := autoplay.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Autoplay failed: " + err.Error() + "\n")
		return
	}
}
