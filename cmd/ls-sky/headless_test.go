package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-sky/internal/config"
	"github.com/litescript/ls-sky/internal/logging"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Time.Start = "2020-04-04T21:00:00Z"
	return cfg
}

// withModes sets the headless flags for the duration of the test.
func withModes(t *testing.T, summary, events bool, path string) {
	t.Helper()
	oldSummary, oldEvents, oldJSON, oldWatch := summaryMode, eventsMode, snapshotPath, watchInterval
	summaryMode, eventsMode, snapshotPath, watchInterval = summary, events, path, 0
	t.Cleanup(func() {
		summaryMode, eventsMode, snapshotPath, watchInterval = oldSummary, oldEvents, oldJSON, oldWatch
	})
}

func TestNewManager(t *testing.T) {
	mgr, err := newManager(testConfig(t), time.Now(), logging.Discard())
	if err != nil {
		t.Fatalf("newManager: %v", err)
	}
	snap := mgr.Snapshot()
	if want := time.Date(2020, 4, 4, 21, 0, 0, 0, time.UTC); !snap.View.When.Equal(want) {
		t.Errorf("When = %v, want %v", snap.View.When, want)
	}
	if snap.View.FOVDeg != 100 || !snap.View.Asterisms {
		t.Errorf("view = %+v, want config defaults", snap.View)
	}
	if len(snap.Sky.Stars()) == 0 {
		t.Error("expected the built-in catalogue")
	}
}

func TestNewManagerLogsCatalogue(t *testing.T) {
	tests := []struct {
		level logging.Level
		want  []string
		skip  []string
	}{
		{logging.LevelDebug, []string{"Catalogue:", "first sky", "stars=", "asterisms=", "planets=7", "compute="}, nil},
		{logging.LevelInfo, []string{"Catalogue:"}, []string{"first sky"}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger := logging.New(tt.level)
		logger.SetOutput(&buf)
		if _, err := newManager(testConfig(t), time.Now(), logger); err != nil {
			t.Fatalf("newManager: %v", err)
		}
		out := buf.String()
		for _, w := range tt.want {
			if !strings.Contains(out, w) {
				t.Errorf("level %v: log missing %q: %q", tt.level, w, out)
			}
		}
		for _, w := range tt.skip {
			if strings.Contains(out, w) {
				t.Errorf("level %v: log has %q: %q", tt.level, w, out)
			}
		}
	}
}

func TestNewManagerErrors(t *testing.T) {
	cfg := testConfig(t)
	cfg.Time.Start = "yesterday"
	if _, err := newManager(cfg, time.Now(), logging.Discard()); err == nil {
		t.Error("expected error for an invalid start time")
	}

	cfg = testConfig(t)
	cfg.Catalogue.Stars = filepath.Join(t.TempDir(), "missing.csv")
	if _, err := newManager(cfg, time.Now(), logging.Discard()); err == nil {
		t.Error("expected error for a missing catalogue")
	}
}

func TestRunHeadlessSummary(t *testing.T) {
	withModes(t, true, true, "")
	mgr, err := newManager(testConfig(t), time.Now(), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := runHeadless(context.Background(), &buf, mgr, "1x", logging.Discard()); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Solar system @ 2020-04-04T21:00:00Z", "Bright stars", "Horizon events", "No events"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunHeadlessJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky.json")
	withModes(t, false, false, path)
	mgr, err := newManager(testConfig(t), time.Now(), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := runHeadless(context.Background(), &buf, mgr, "1x", logging.Discard()); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if parsed["timestamp"] != "2020-04-04T21:00:00Z" {
		t.Errorf("timestamp = %v", parsed["timestamp"])
	}
}

func TestRunHeadlessWatchStopsOnCancel(t *testing.T) {
	withModes(t, true, false, "")
	watchInterval = time.Hour
	mgr, err := newManager(testConfig(t), time.Now(), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	if err := runHeadless(ctx, &buf, mgr, "300x", logging.Discard()); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if n := strings.Count(buf.String(), "Solar system @"); n != 1 {
		t.Errorf("wrote %d reports before stopping, want 1", n)
	}
}

func TestWriteExportStdout(t *testing.T) {
	withModes(t, false, false, "-")
	mgr, err := newManager(testConfig(t), time.Now(), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeReports(&buf, mgr.Snapshot(), logging.Discard()); err != nil {
		t.Fatal(err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Errorf("stdout export is not JSON: %q", buf.String())
	}

	if err := writeExport(&buf, nil, filepath.Join(t.TempDir(), "missing", "sky.json")); err == nil {
		t.Error("expected an error creating a file in a missing directory")
	}
}
