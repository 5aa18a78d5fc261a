package eggs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/egg files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/hatchery/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "eggs", "default.yaml")
}
func (p Paths) EggPath(egg string) string {
	return filepath.Join(p.BaseDir, "eggs", egg+".yaml")
}

// Loader reads YAML egg files and merges default → egg.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: egg name, "" for default only
}

// NewLoader creates an egg loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → egg (egg optional). Missing files
// merge as empty configs.
func (l *Loader) LoadMerged(egg string) (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[egg]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if egg != "" {
		eggCfg, err := readYAML(l.paths.EggPath(egg))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read egg %q: %w", egg, err)
		}
		merged = mergeRaw(defCfg, eggCfg)
	}

	l.mu.Lock()
	l.cache[egg] = merged
	l.mu.Unlock()
	return merged, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw overlays b on a: non-nil scalars in b win, and a non-empty pet
// list in b replaces a's list.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a
	out.Pets = append([]PetConfig(nil), a.Pets...)

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if b.Params.LuckPercent != nil {
		out.Params.LuckPercent = b.Params.LuckPercent
	}
	if b.Params.ShinyPercent != nil {
		out.Params.ShinyPercent = b.Params.ShinyPercent
	}
	if b.Params.MythicPercent != nil {
		out.Params.MythicPercent = b.Params.MythicPercent
	}
	if len(b.Pets) > 0 {
		out.Pets = append([]PetConfig(nil), b.Pets...)
	}
	return out
}
