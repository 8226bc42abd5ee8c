// Package pointfile persists click points as YAML and watches the file for
// edits made while a session is running.
package pointfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"autotap/internal/core/autoclicker"
)

const currentVersion = 1

type document struct {
	Version int     `yaml:"version"`
	Points  []entry `yaml:"points"`
}

type entry struct {
	ID         int     `yaml:"id"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	IntervalMs int64   `yaml:"interval_ms"`
	Enabled    *bool   `yaml:"enabled,omitempty"`
	Repeat     int     `yaml:"repeat,omitempty"`
}

// Load reads click points from path. A missing file yields no points and no
// error. Missing intervals take the default, short ones are clamped, and
// missing enabled flags default to true.
func Load(path string) ([]autoclicker.ClickPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return Decode(data)
}

// Decode parses the YAML point document.
func Decode(data []byte) ([]autoclicker.ClickPoint, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse points: %w", err)
	}
	if doc.Version > currentVersion {
		return nil, fmt.Errorf("points file version %d is newer than supported version %d", doc.Version, currentVersion)
	}

	points := make([]autoclicker.ClickPoint, 0, len(doc.Points))
	for _, e := range doc.Points {
		enabled := true
		if e.Enabled != nil {
			enabled = *e.Enabled
		}
		// A missing or non-positive interval means the default, not the floor.
		interval := autoclicker.DefaultInterval
		if e.IntervalMs > 0 {
			interval = autoclicker.ClampInterval(time.Duration(e.IntervalMs) * time.Millisecond)
		}
		points = append(points, autoclicker.ClickPoint{
			ID:       e.ID,
			X:        e.X,
			Y:        e.Y,
			Interval: interval,
			Enabled:  enabled,
			Repeat:   autoclicker.NormalizeRepeat(e.Repeat),
		})
	}
	return points, nil
}

// Encode renders points as a YAML document.
func Encode(points []autoclicker.ClickPoint) ([]byte, error) {
	doc := document{Version: currentVersion, Points: make([]entry, 0, len(points))}
	for _, p := range points {
		enabled := p.Enabled
		e := entry{
			ID:         p.ID,
			X:          p.X,
			Y:          p.Y,
			IntervalMs: p.Interval.Milliseconds(),
			Enabled:    &enabled,
		}
		if p.Repeat > 0 {
			e.Repeat = p.Repeat
		}
		doc.Points = append(doc.Points, e)
	}
	return yaml.Marshal(doc)
}

// Save writes points to path through a temp file and rename, so a watcher
// never observes a half-written document.
func Save(path string, points []autoclicker.ClickPoint) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create points dir: %w", err)
	}

	data, err := Encode(points)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write points: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to persist points: %w", err)
	}
	return nil
}
