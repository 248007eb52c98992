package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
	"github.com/tidwall/jsonc"
)

const overrideFileName = ".balindex.kdl"

// LoadKDL reads <root>/.balindex.kdl, returning (nil, nil) if the file
// does not exist. It never resolves root itself; callers pass an
// already-absolute path (project root or home directory).
func LoadKDL(root string) (*Config, error) {
	path := filepath.Join(root, overrideFileName)

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return parseKDL(string(content))
}

// parseKDL builds a zero-valued Config and overlays whatever nodes the
// document defines. Fields left unset stay at the Go zero value so
// that mergeConfig can tell "unset" from "explicitly zero".
func parseKDL(content string) (*Config, error) {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", overrideFileName, err)
	}

	cfg := &Config{}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "discovery":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "cache_dir":
					if s, ok := firstStringArg(cn); ok {
						cfg.Discovery.CacheDirName = s
					}
				case "max_depth":
					if v, ok := firstIntArg(cn); ok {
						cfg.Discovery.MaxDepth = v
					}
				case "max_branches":
					if v, ok := firstIntArg(cn); ok {
						cfg.Discovery.MaxBranches = v
					}
				case "exclude":
					cfg.Discovery.Exclude = collectStringArgs(cn)
				}
			}
		case "memory":
			for _, cn := range n.Children {
				if nodeName(cn) == "ceiling_mb" {
					if v, ok := firstIntArg(cn); ok {
						cfg.Memory.CeilingMB = v
					}
				}
			}
		case "watch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Watch.Enabled = b
					}
				case "debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Watch.DebounceMs = v
					}
				}
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "fuzzy_threshold":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Search.FuzzyThreshold = v
					}
				case "fuzzy_suggest_max":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.FuzzySuggestMax = v
					}
				case "stem_min_length":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.StemMinLength = v
					}
				}
			}
		case "log_level":
			if s, ok := firstStringArg(n); ok {
				cfg.LogLevel = s
			}
		case "force_reload":
			if b, ok := firstBoolArg(n); ok {
				cfg.ForceReload = b
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	s, ok := n.Arguments[0].Value.(string)
	return s, ok
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	b, ok := n.Arguments[0].Value.(bool)
	return b, ok
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// editorSettings mirrors the subset of .vscode/settings.json this
// engine reads. It is a read-only probe: the engine never writes back
// to the editor's settings file.
type editorSettings struct {
	PackageCachePath []string `json:"al.packageCachePath"`
}

// ReadEditorPackageCachePath looks for <root>/.vscode/settings.json and
// returns the first entry of its al.packageCachePath array, if
// present. The AL extension stores this as an array to support
// multiple symbol cache locations; this engine only consults the
// first. A missing file or missing key is not an error; it simply
// means the compiled-in default cache directory name applies.
//
// VS Code settings files are JSONC (// and /* */ comments, trailing
// commas), which encoding/json rejects outright, so the raw bytes are
// normalized to strict JSON first.
func ReadEditorPackageCachePath(root string) (string, error) {
	path := filepath.Join(root, ".vscode", "settings.json")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	var settings editorSettings
	if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	if len(settings.PackageCachePath) == 0 {
		return "", nil
	}

	return settings.PackageCachePath[0], nil
}
