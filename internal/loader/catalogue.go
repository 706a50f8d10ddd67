package loader

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/litescript/ls-sky/internal/astro"
)

var (
	//go:embed data/stars.csv
	defaultStars []byte

	//go:embed data/asterisms.txt
	defaultAsterisms []byte
)

// Default returns the built-in bright star catalogue.
func Default() (*astro.StarCatalogue, error) {
	b := astro.NewBuilder()
	if err := b.LoadFrom(bytes.NewReader(defaultStars), HYG); err != nil {
		return nil, fmt.Errorf("built-in stars: %w", err)
	}
	if err := b.LoadFrom(bytes.NewReader(defaultAsterisms), Asterisms); err != nil {
		return nil, fmt.Errorf("built-in asterisms: %w", err)
	}
	return b.Build()
}

// FromFiles builds a catalogue from a HYG CSV file and an optional
// asterism file. An empty starsPath selects the built-in stars; an empty
// asterismsPath selects the built-in asterisms.
func FromFiles(starsPath, asterismsPath string) (*astro.StarCatalogue, error) {
	if starsPath == "" && asterismsPath == "" {
		return Default()
	}

	b := astro.NewBuilder()
	if err := loadFile(b, starsPath, defaultStars, HYG); err != nil {
		return nil, err
	}
	if err := loadFile(b, asterismsPath, defaultAsterisms, Asterisms); err != nil {
		return nil, err
	}
	return b.Build()
}

func loadFile(b *astro.Builder, path string, fallback []byte, l astro.Loader) error {
	if path == "" {
		return b.LoadFrom(bytes.NewReader(fallback), l)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()

	if err := b.LoadFrom(f, l); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
