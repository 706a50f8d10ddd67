// Command ls-sky is a terminal planetarium: a stereographic view of the
// night sky and a top-down view of the solar system.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-sky/internal/blackbody"
	"github.com/litescript/ls-sky/internal/config"
	"github.com/litescript/ls-sky/internal/logging"
	"github.com/litescript/ls-sky/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	watchInterval time.Duration
	snapshotPath  string
	eventsMode    bool
	brightStars   int
)

const (
	minWatch = 1 * time.Second
	maxWatch = 5 * time.Minute
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "ls-sky: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, then shows the TUI or writes the headless reports to
// stdout. It returns once the program is done or interrupted.
func run(args []string, stdout *os.File) error {
	fs := flag.NewFlagSet("ls-sky", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML configuration file")
	envFile := fs.String("env", ".env", "dotenv file with LS_SKY_* variables")
	lon := fs.Float64("lon", 0, "Observer longitude in degrees, east positive")
	lat := fs.Float64("lat", 0, "Observer latitude in degrees")
	start := fs.String("start", "", "Observed instant (RFC 3339), default now")
	accelerator := fs.String("accelerator", "", "Time accelerator (1x, 30x, 300x, 3000x, day, sidereal)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	starsPath := fs.String("stars", "", "HYG star catalogue CSV")
	asterismsPath := fs.String("asterisms", "", "Asterism file")
	fs.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	fs.DurationVar(&watchInterval, "watch", 0, "Repeat the summary at interval, advancing time with the accelerator (e.g., 10s)")
	fs.StringVar(&snapshotPath, "json", "", "Export JSON snapshot to file (use - for stdout)")
	fs.BoolVar(&eventsMode, "events", false, "Show horizon events")
	fs.IntVar(&brightStars, "bright", 10, "Number of bright stars in the summary and snapshot")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		return err
	}

	// Flags set on the command line override every other source
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lon":
			cfg.Observer.LonDeg = *lon
		case "lat":
			cfg.Observer.LatDeg = *lat
		case "start":
			cfg.Time.Start = *start
		case "accelerator":
			cfg.Time.Accelerator = *accelerator
		case "log-level":
			cfg.LogLevel = *logLevel
		case "stars":
			cfg.Catalogue.Stars = *starsPath
		case "asterisms":
			cfg.Catalogue.Asterisms = *asterismsPath
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Validate watch interval
	if watchInterval != 0 {
		watchInterval = min(max(watchInterval, minWatch), maxWatch)
	}

	// Set up logging
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	if *configPath != "" {
		logger.Debug("Loaded config from %s", *configPath)
	}

	stateMgr, err := newManager(cfg, time.Now(), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Headless mode: no TUI, also when stdout is not a terminal
	headless := summaryMode || snapshotPath != "" || eventsMode
	if !headless && !term.IsTerminal(int(stdout.Fd())) {
		logger.Debug("stdout is not a terminal, printing a summary")
		summaryMode, headless = true, true
	}
	if headless {
		return runHeadless(ctx, stdout, stateMgr, cfg.Time.Accelerator, logger)
	}

	model := ui.New(stateMgr, blackbody.NewTable(), cfg.Time.Accelerator)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx), tea.WithOutput(stdout))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
