package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/litescript/ls-sky/internal/config"
	"github.com/litescript/ls-sky/internal/loader"
	"github.com/litescript/ls-sky/internal/logging"
	"github.com/litescript/ls-sky/internal/report"
	"github.com/litescript/ls-sky/internal/state"
)

// newManager loads the catalogue and computes the first sky from cfg.
func newManager(cfg *config.Config, now time.Time, logger *logging.Logger) (*state.Manager, error) {
	where, err := cfg.Where()
	if err != nil {
		return nil, fmt.Errorf("observer: %w", err)
	}
	center, err := cfg.Center()
	if err != nil {
		return nil, fmt.Errorf("view centre: %w", err)
	}
	when, err := cfg.Instant(now)
	if err != nil {
		return nil, err
	}

	cat, err := loader.FromFiles(cfg.Catalogue.Stars, cfg.Catalogue.Asterisms)
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}
	logger.Info("Catalogue: %d stars, %d asterisms", len(cat.Stars()), len(cat.Asterisms()))

	mgr := state.NewManager(state.DefaultConfig(), cat, state.View{
		Where:     where,
		When:      when,
		Center:    center,
		FOVDeg:    cfg.View.FieldOfViewDeg,
		Asterisms: cfg.View.Asterisms,
	})
	snap := mgr.Snapshot()
	logger.Zerolog().Debug().
		Int("stars", len(cat.Stars())).
		Int("asterisms", len(cat.Asterisms())).
		Int("planets", len(snap.Sky.Planets())).
		Dur("compute", snap.ComputeTime).
		Msg("first sky")
	return mgr, nil
}

// runHeadless prints the requested reports once, or every watchInterval
// until ctx is done. In watch mode the observed instant advances with the
// accelerator from the configured start.
func runHeadless(ctx context.Context, w io.Writer, stateMgr *state.Manager, accelerator string, logger *logging.Logger) error {
	if watchInterval == 0 {
		return writeReports(w, stateMgr.Snapshot(), logger)
	}

	acc, ok := state.AcceleratorByName(accelerator)
	if !ok {
		acc = state.Accelerators[0]
	}
	animator := state.NewAnimator(acc.Accelerator)
	animator.Start(time.Now(), stateMgr.Snapshot().View.When)

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	for first := true; ; first = false {
		if !first {
			fmt.Fprintln(w)
		}
		if err := writeReports(w, stateMgr.Snapshot(), logger); err != nil {
			logger.Error("%v", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if when, ok := animator.Tick(now); ok {
				stateMgr.SetWhen(when)
			}
		}
	}
}

// writeReports writes the JSON export, the summary tables and the event
// log selected by the flags.
func writeReports(w io.Writer, snap state.Snapshot, logger *logging.Logger) error {
	sky := snap.Sky
	if snapshotPath != "" {
		if err := writeExport(w, report.ExportSky(sky, brightStars, snap.Events), snapshotPath); err != nil {
			return err
		}
		logger.Debug("Sky exported to %s", snapshotPath)
	}

	if summaryMode {
		report.WriteSummaryTable(w, "Solar system", report.Bodies(sky), sky.When(), sky.Where())
		if brightStars > 0 {
			fmt.Fprintln(w)
			report.WriteSummaryTable(w, "Bright stars", report.BrightStars(sky, brightStars), sky.When(), sky.Where())
		}
	}

	if eventsMode {
		fmt.Fprintln(w)
		report.WriteEvents(w, snap.Events, 10)
	}
	return nil
}

// writeExport writes export to path, or to w when path is "-".
func writeExport(w io.Writer, export *report.SkyExport, path string) (err error) {
	if path != "-" {
		f, ferr := os.Create(path)
		if ferr != nil {
			return fmt.Errorf("create export file: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("close export file: %w", cerr)
			}
		}()
		w = f
	}
	if err := export.WriteJSON(w); err != nil {
		return fmt.Errorf("write sky export: %w", err)
	}
	return nil
}
