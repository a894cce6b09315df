// Package config loads the optional .treehouse.yaml options file. Every
// value is a tunable with a sensible default; a missing file is not an
// error, and unknown keys are rejected so typos surface instead of being
// silently ignored.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the options file looked up by Discover.
const FileName = ".treehouse.yaml"

// Options are the tunable constants of the viewer. The zero value is not
// usable; start from Defaults().
type Options struct {
	// Layout spacing.
	HGap float64 `yaml:"h_gap"`
	VGap float64 `yaml:"v_gap"`

	// Node sizing.
	NodeHeight  float64 `yaml:"node_height"`
	MinWidth    float64 `yaml:"min_width"`
	FontSize    float64 `yaml:"font_size"`
	TruncateLen int     `yaml:"truncate_len"`

	// Camera behavior.
	FitPadding   float64 `yaml:"fit_padding"`
	FitThreshold float64 `yaml:"fit_threshold"`
	ScrollMargin float64 `yaml:"scroll_margin"`

	// Editor-sync debounce, milliseconds. Consumed by embedding editors;
	// carried here so one file tunes the whole integration.
	DebounceMS int `yaml:"debounce_ms"`

	// Initial expansion depth for a freshly parsed tree.
	ExpandDepth int `yaml:"expand_depth"`
}

// Defaults returns the standard options.
func Defaults() Options {
	return Options{
		HGap:         20,
		VGap:         28,
		NodeHeight:   36,
		MinWidth:     60,
		FontSize:     12,
		TruncateLen:  18,
		FitPadding:   40,
		FitThreshold: 50,
		ScrollMargin: 24,
		DebounceMS:   50,
		ExpandDepth:  2,
	}
}

// Load reads an options file, applying its values over the defaults.
func Load(path string) (Options, error) {
	opts := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return Defaults(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := opts.validate(); err != nil {
		return Defaults(), fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Discover walks from dir up to the filesystem root looking for the options
// file, mirroring how editors discover project configuration. Returns the
// defaults when no file exists anywhere on the path.
func Discover(dir string) (Options, string) {
	dir = filepath.Clean(dir)
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			if opts, err := Load(candidate); err == nil {
				return opts, candidate
			}
			// A broken config falls back to defaults; the load error was
			// already wrapped with the path for the caller who cares.
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Defaults(), ""
		}
		dir = parent
	}
}

func (o Options) validate() error {
	switch {
	case o.HGap < 0 || o.VGap < 0:
		return errors.New("gaps must be non-negative")
	case o.NodeHeight <= 0 || o.MinWidth <= 0 || o.FontSize <= 0:
		return errors.New("node dimensions must be positive")
	case o.TruncateLen < 1:
		return errors.New("truncate_len must be at least 1")
	case o.ExpandDepth < 0:
		return errors.New("expand_depth must be non-negative")
	}
	return nil
}
