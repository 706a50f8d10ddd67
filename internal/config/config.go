// Package config loads ls-sky settings from defaults, an optional TOML
// file, a .env file and LS_SKY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/naoina/toml"

	"github.com/litescript/ls-sky/internal/coords"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LS_SKY_"

var validate = validator.New()

type Config struct {
	Observer  Observer  `toml:"observer"`
	View      View      `toml:"view"`
	Catalogue Catalogue `toml:"catalogue"`
	Time      Time      `toml:"time"`
	LogLevel  string    `toml:"log_level" validate:"oneof=debug info warn error"`
}

type Observer struct {
	LonDeg float64 `toml:"lon_deg" validate:"gte=-180,lt=180"`
	LatDeg float64 `toml:"lat_deg" validate:"gte=-90,lte=90"`
}

type View struct {
	CenterAzDeg    float64 `toml:"center_az_deg" validate:"gte=0,lt=360"`
	CenterAltDeg   float64 `toml:"center_alt_deg" validate:"gte=5,lte=90"`
	FieldOfViewDeg float64 `toml:"fov_deg" validate:"gte=30,lte=150"`
	Asterisms      bool    `toml:"asterisms"`
}

// Catalogue paths; empty selects the built-in data.
type Catalogue struct {
	Stars     string `toml:"stars"`
	Asterisms string `toml:"asterisms"`
}

type Time struct {
	// Start is an RFC 3339 instant; empty means now.
	Start       string `toml:"start" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Accelerator string `toml:"accelerator" validate:"oneof=1x 30x 300x 3000x day sidereal"`
}

// Default returns the built-in settings: an observer at EPFL looking
// south, 15° above the horizon.
func Default() *Config {
	return &Config{
		Observer: Observer{LonDeg: 6.57, LatDeg: 46.52},
		View: View{
			CenterAzDeg:    180,
			CenterAltDeg:   15,
			FieldOfViewDeg: 100,
			Asterisms:      true,
		},
		Time:     Time{Accelerator: "300x"},
		LogLevel: "info",
	}
}

// Load builds the configuration. path names an optional TOML file and
// envFile an optional dotenv file; a missing envFile is not an error.
// Variables already set in the environment take precedence over envFile.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = m
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := dotenv[EnvPrefix+key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"LON", &c.Observer.LonDeg},
		{"LAT", &c.Observer.LatDeg},
		{"AZ", &c.View.CenterAzDeg},
		{"ALT", &c.View.CenterAltDeg},
		{"FOV", &c.View.FieldOfViewDeg},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, f.key, err)
		}
		*f.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"STARS", &c.Catalogue.Stars},
		{"ASTERISMS", &c.Catalogue.Asterisms},
		{"START", &c.Time.Start},
		{"ACCELERATOR", &c.Time.Accelerator},
		{"LOG_LEVEL", &c.LogLevel},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok {
			*s.dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup("SHOW_ASTERISMS"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sSHOW_ASTERISMS: %w", EnvPrefix, err)
		}
		c.View.Asterisms = b
	}
	return nil
}

// Validate checks every field against its range.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Where returns the observer location.
func (c *Config) Where() (coords.Geographic, error) {
	return coords.GeographicFromDeg(c.Observer.LonDeg, c.Observer.LatDeg)
}

// Center returns the projection centre.
func (c *Config) Center() (coords.Horizontal, error) {
	return coords.HorizontalFromDeg(c.View.CenterAzDeg, c.View.CenterAltDeg)
}

// Instant returns the configured start instant, or now.
func (c *Config) Instant(now time.Time) (time.Time, error) {
	if c.Time.Start == "" {
		return now, nil
	}
	t, err := time.Parse(time.RFC3339, c.Time.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time: %w", err)
	}
	return t, nil
}
