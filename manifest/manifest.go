// Package manifest handles boxlit.toml runtime configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/boxlit/vm"
	"github.com/chazu/boxlit/vm/emit"
)

// FileName is the name of the configuration file.
const FileName = "boxlit.toml"

// Defaults
const (
	DefaultTarget    = "java"
	DefaultStorePath = ".boxlit/literals.db"
)

// Manifest represents a boxlit.toml configuration.
type Manifest struct {
	Runtime RuntimeConfig `toml:"runtime"`
	Emit    EmitConfig    `toml:"emit"`
	Store   StoreConfig   `toml:"store"`
	Log     LogConfig     `toml:"log"`

	// Dir is the directory containing the boxlit.toml file (set at load time).
	Dir string `toml:"-"`
}

// RuntimeConfig configures the object runtime.
type RuntimeConfig struct {
	PrintReadably bool   `toml:"print-readably"`
	HashSeed      uint64 `toml:"hash-seed"`
}

// EmitConfig selects the default literal target.
type EmitConfig struct {
	Target string `toml:"target"`
}

// StoreConfig locates the literal store.
type StoreConfig struct {
	Path string `toml:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Verbosity int `toml:"verbosity"`
}

// Default returns the configuration used when no boxlit.toml exists.
func Default(dir string) *Manifest {
	m := &Manifest{Dir: dir}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Emit.Target == "" {
		m.Emit.Target = DefaultTarget
	}
	if m.Store.Path == "" {
		m.Store.Path = DefaultStorePath
	}
}

// Load parses the boxlit.toml file in dir.
func Load(dir string) (*Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return decodeFile(abs)
}

// FindAndLoad loads the nearest boxlit.toml at or above startDir. It
// returns nil, nil when there is none.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := findDir(startDir)
	if err != nil || dir == "" {
		return nil, err
	}
	return decodeFile(dir)
}

// findDir returns the closest directory at or above startDir holding a
// FileName, or "" when the walk reaches the filesystem root.
func findDir(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for ; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}
		if filepath.Dir(dir) == dir {
			return "", nil
		}
	}
}

// decodeFile reads dir/FileName, fills defaults and checks the target.
func decodeFile(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	m := &Manifest{Dir: dir}
	if _, err := toml.DecodeFile(path, m); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	m.applyDefaults()
	if _, err := m.Target(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// RuntimeOptions returns the vm options described by the manifest.
func (m *Manifest) RuntimeOptions() vm.Options {
	return vm.Options{
		HashSeed:      m.Runtime.HashSeed,
		PrintReadably: m.Runtime.PrintReadably,
	}
}

// Target resolves the configured emit target.
func (m *Manifest) Target() (*emit.Target, error) {
	return emit.Lookup(m.Emit.Target)
}

// StorePath returns the absolute path of the literal store.
func (m *Manifest) StorePath() string {
	if filepath.IsAbs(m.Store.Path) || m.Store.Path == ":memory:" {
		return m.Store.Path
	}
	return filepath.Join(m.Dir, m.Store.Path)
}
