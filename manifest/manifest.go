// Package manifest handles blockrt.toml runtime configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a blockrt.toml runtime configuration.
type Manifest struct {
	Trace TraceConfig `toml:"trace"`
	Heap  HeapConfig  `toml:"heap"`

	// Dir is the directory containing the blockrt.toml file (set at load time).
	Dir string `toml:"-"`
}

// TraceConfig configures event recording.
type TraceConfig struct {
	Enabled   bool   `toml:"enabled"`
	Capacity  int    `toml:"capacity"`   // max buffered events; 0 = unbounded
	StorePath string `toml:"store-path"` // SQLite path for persisted sessions
}

// HeapConfig configures allocator debug aids.
type HeapConfig struct {
	PoisonOnFree bool `toml:"poison-on-free"`
}

// Default returns the configuration used when no blockrt.toml exists:
// tracing off, no debug aids.
func Default() *Manifest {
	return &Manifest{}
}

// Load parses a blockrt.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "blockrt.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if m.Trace.Capacity < 0 {
		return nil, fmt.Errorf("invalid trace capacity %d in %s", m.Trace.Capacity, path)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a blockrt.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "blockrt.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// StorePath returns the trace store path resolved against the manifest
// directory, or "" when no store is configured.
func (m *Manifest) StorePath() string {
	if m.Trace.StorePath == "" {
		return ""
	}
	if filepath.IsAbs(m.Trace.StorePath) {
		return m.Trace.StorePath
	}
	return filepath.Join(m.Dir, m.Trace.StorePath)
}
