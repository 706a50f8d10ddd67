package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/litescript/ls-sky/internal/astro"
)

// Asterisms loads asterisms, one per line, each a comma separated list of
// Hipparcos numbers. Numbers resolve against the stars already in the
// builder; when several stars share a number the first one wins. Lines
// naming a star the builder does not hold are skipped.
var Asterisms astro.Loader = astro.LoaderFunc(loadAsterisms)

func loadAsterisms(r io.Reader, b *astro.Builder) error {
	byHIP := make(map[int]*astro.Star)
	for _, s := range b.Stars() {
		if _, ok := byHIP[s.HIP()]; !ok {
			byHIP[s.HIP()] = s
		}
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var stars []*astro.Star
		complete := true
		for _, field := range strings.Split(text, ",") {
			hip, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return fmt.Errorf("asterism line %d: %w", line, err)
			}
			s, ok := byHIP[hip]
			if !ok {
				complete = false
				break
			}
			stars = append(stars, s)
		}
		if !complete {
			continue
		}

		a, err := astro.NewAsterism(stars)
		if err != nil {
			return fmt.Errorf("asterism line %d: %w", line, err)
		}
		b.AddAsterism(a)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read asterisms: %w", err)
	}
	return nil
}
