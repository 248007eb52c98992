package config

import (
	"os"
)

// Default tunables, applied by defaultConfig below.
const (
	DefaultCacheDirName    = ".alpackages"
	DefaultMaxDepth        = 2
	DefaultMaxBranches     = 5000
	DefaultMemoryCeilingMB = 500
	DefaultWatchDebounceMs = 300
	DefaultFuzzyThreshold  = 0.80
	DefaultFuzzySuggestMax = 3
)

// Config is the fully resolved Configuration Registry: compiled-in
// defaults layered with a global override file, an editor settings
// probe, and a project override file.
type Config struct {
	Project    Project
	Discovery  Discovery
	Memory     Memory
	Watch      Watch
	Search     Search
	LogLevel   string
	ForceReload bool
}

type Project struct {
	// Root is always an absolute path; never resolved against the
	// process working directory once set.
	Root string
}

type Discovery struct {
	CacheDirName string   // directory probed under Root, default .alpackages
	MaxDepth     int      // bounded walk depth under CacheDirName
	MaxBranches  int      // safety cap on directories visited per discovery pass
	Exclude      []string // doublestar glob patterns skipped during discovery
}

type Memory struct {
	// CeilingMB is the configured soft memory ceiling. It is parsed and
	// merged but not read by any component: nothing samples memory use
	// against it, and the secondary indices (trie, bloom filter) are
	// dropped only by an explicit Database.DropSecondaryIndices call.
	CeilingMB int
}

type Watch struct {
	Enabled    bool
	DebounceMs int
}

type Search struct {
	FuzzyThreshold  float64 // Jaro-Winkler threshold for did-you-mean suggestions
	FuzzySuggestMax int     // maximum number of did-you-mean suggestions returned
	StemMinLength   int     // minimum keyword length considered for stemming in domain classification
}

// Load resolves the Configuration Registry for a project rooted at
// root. root must already be an absolute path; Load does not expand
// or re-resolve it.
func Load(root string) (*Config, error) {
	cfg := defaultConfig(root)

	if home, err := os.UserHomeDir(); err == nil {
		if global, err := LoadKDL(home); err == nil && global != nil {
			cfg = mergeConfig(cfg, global)
		}
	}

	if editorPath, err := ReadEditorPackageCachePath(root); err == nil && editorPath != "" {
		cfg.Discovery.CacheDirName = editorPath
	}

	if project, err := LoadKDL(root); err == nil && project != nil {
		cfg = mergeConfig(cfg, project)
	} else if err != nil {
		return nil, err
	}

	cfg.Project.Root = root
	return cfg, nil
}

func defaultConfig(root string) *Config {
	return &Config{
		Project: Project{Root: root},
		Discovery: Discovery{
			CacheDirName: DefaultCacheDirName,
			MaxDepth:     DefaultMaxDepth,
			MaxBranches:  DefaultMaxBranches,
			Exclude: []string{
				"**/.git/**",
				"**/node_modules/**",
				"**/.alcache/**",
				"**/.snapshots/**",
			},
		},
		Memory: Memory{CeilingMB: DefaultMemoryCeilingMB},
		Watch: Watch{
			Enabled:    false,
			DebounceMs: DefaultWatchDebounceMs,
		},
		Search: Search{
			FuzzyThreshold:  DefaultFuzzyThreshold,
			FuzzySuggestMax: DefaultFuzzySuggestMax,
			StemMinLength:   3,
		},
		LogLevel: "info",
	}
}

// mergeConfig overlays non-zero fields of overlay onto a copy of base,
// project-wins-over-global precedence. Slices in overlay replace,
// never append to, the base slice.
func mergeConfig(base, overlay *Config) *Config {
	merged := *base

	if overlay.Discovery.CacheDirName != "" {
		merged.Discovery.CacheDirName = overlay.Discovery.CacheDirName
	}
	if overlay.Discovery.MaxDepth != 0 {
		merged.Discovery.MaxDepth = overlay.Discovery.MaxDepth
	}
	if overlay.Discovery.MaxBranches != 0 {
		merged.Discovery.MaxBranches = overlay.Discovery.MaxBranches
	}
	if len(overlay.Discovery.Exclude) > 0 {
		merged.Discovery.Exclude = overlay.Discovery.Exclude
	}
	if overlay.Memory.CeilingMB != 0 {
		merged.Memory.CeilingMB = overlay.Memory.CeilingMB
	}
	if overlay.Watch.Enabled {
		merged.Watch.Enabled = true
	}
	if overlay.Watch.DebounceMs != 0 {
		merged.Watch.DebounceMs = overlay.Watch.DebounceMs
	}
	if overlay.Search.FuzzyThreshold != 0 {
		merged.Search.FuzzyThreshold = overlay.Search.FuzzyThreshold
	}
	if overlay.Search.FuzzySuggestMax != 0 {
		merged.Search.FuzzySuggestMax = overlay.Search.FuzzySuggestMax
	}
	if overlay.Search.StemMinLength != 0 {
		merged.Search.StemMinLength = overlay.Search.StemMinLength
	}
	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}
	if overlay.ForceReload {
		merged.ForceReload = overlay.ForceReload
	}

	return &merged
}
