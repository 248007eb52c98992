package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Project.Root != root {
		t.Errorf("Project.Root = %q, want %q", cfg.Project.Root, root)
	}
	if cfg.Discovery.CacheDirName != DefaultCacheDirName {
		t.Errorf("CacheDirName = %q, want %q", cfg.Discovery.CacheDirName, DefaultCacheDirName)
	}
	if cfg.Discovery.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", cfg.Discovery.MaxDepth, DefaultMaxDepth)
	}
	if cfg.Memory.CeilingMB != DefaultMemoryCeilingMB {
		t.Errorf("CeilingMB = %d, want %d", cfg.Memory.CeilingMB, DefaultMemoryCeilingMB)
	}
	if cfg.Search.FuzzyThreshold != DefaultFuzzyThreshold {
		t.Errorf("FuzzyThreshold = %v, want %v", cfg.Search.FuzzyThreshold, DefaultFuzzyThreshold)
	}
}

func TestLoadProjectOverride(t *testing.T) {
	root := t.TempDir()
	kdl := `
discovery {
    cache_dir "CustomPackages"
    max_depth 3
}
watch {
    enabled #true
    debounce_ms 500
}
search {
    fuzzy_threshold 0.9
}
log_level "debug"
`
	writeFile(t, filepath.Join(root, overrideFileName), kdl)

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Discovery.CacheDirName != "CustomPackages" {
		t.Errorf("CacheDirName = %q, want CustomPackages", cfg.Discovery.CacheDirName)
	}
	if cfg.Discovery.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", cfg.Discovery.MaxDepth)
	}
	if !cfg.Watch.Enabled {
		t.Error("expected Watch.Enabled = true")
	}
	if cfg.Watch.DebounceMs != 500 {
		t.Errorf("DebounceMs = %d, want 500", cfg.Watch.DebounceMs)
	}
	if cfg.Search.FuzzyThreshold != 0.9 {
		t.Errorf("FuzzyThreshold = %v, want 0.9", cfg.Search.FuzzyThreshold)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	// Values absent from the override file must retain compiled-in defaults.
	if cfg.Discovery.MaxBranches != DefaultMaxBranches {
		t.Errorf("MaxBranches = %d, want default %d", cfg.Discovery.MaxBranches, DefaultMaxBranches)
	}
}

func TestLoadMissingOverrideFile(t *testing.T) {
	root := t.TempDir()

	cfg, err := LoadKDL(root)
	if err != nil {
		t.Fatalf("LoadKDL: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config for missing override file, got %+v", cfg)
	}
}

func TestReadEditorPackageCachePath(t *testing.T) {
	root := t.TempDir()
	vscodeDir := filepath.Join(root, ".vscode")
	if err := os.MkdirAll(vscodeDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(vscodeDir, "settings.json"), `{"al.packageCachePath": [".alpackages", "../shared"]}`)

	path, err := ReadEditorPackageCachePath(root)
	if err != nil {
		t.Fatalf("ReadEditorPackageCachePath: %v", err)
	}
	if path != ".alpackages" {
		t.Errorf("path = %q, want .alpackages", path)
	}
}

func TestReadEditorPackageCachePathTolerateJSONC(t *testing.T) {
	root := t.TempDir()
	vscodeDir := filepath.Join(root, ".vscode")
	if err := os.MkdirAll(vscodeDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(vscodeDir, "settings.json"), `{
		// VS Code settings files commonly carry comments like this one.
		"al.packageCachePath": [".alpackages"], /* trailing comment */
	}`)

	path, err := ReadEditorPackageCachePath(root)
	if err != nil {
		t.Fatalf("ReadEditorPackageCachePath: %v", err)
	}
	if path != ".alpackages" {
		t.Errorf("path = %q, want .alpackages", path)
	}
}

func TestReadEditorPackageCachePathMissing(t *testing.T) {
	root := t.TempDir()

	path, err := ReadEditorPackageCachePath(root)
	if err != nil {
		t.Fatalf("ReadEditorPackageCachePath: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
