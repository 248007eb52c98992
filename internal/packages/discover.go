package packages

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/balsymbols/symbolindex/internal/config"
	"github.com/balsymbols/symbolindex/internal/engineerr"
)

const packageFileExt = ".app"

// Discover walks root (which must already be absolute — enforced by
// the path-resolution invariant) looking for package files under the
// configured cache directory name, to a bounded depth, skipping
// anything matching the exclusion globs.
func Discover(root string, cfg *config.Config) ([]string, error) {
	if !filepath.IsAbs(root) {
		return nil, engineerr.InvalidArgumentf(
			"root must be an absolute path, e.g. /home/user/project or C:\\Users\\user\\project, got %q", root)
	}

	cacheDir := filepath.Join(root, cfg.Discovery.CacheDirName)
	info, err := os.Stat(cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, engineerr.Wrap(engineerr.IoError, err, "stat cache directory")
	}
	if !info.IsDir() {
		return nil, engineerr.New(engineerr.InvalidArgument, "%q is not a directory", cacheDir)
	}

	var found []string
	branches := 0

	var walk func(dir string, depth int) error
	walk = func(dir string, depth int) error {
		if depth > cfg.Discovery.MaxDepth {
			return nil
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return engineerr.Wrap(engineerr.IoError, err, "read directory %q", dir)
		}

		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				branches++
				if branches > cfg.Discovery.MaxBranches {
					return nil
				}
				if excluded(root, full, cfg.Discovery.Exclude) {
					continue
				}
				if err := walk(full, depth+1); err != nil {
					return err
				}
				continue
			}
			if strings.EqualFold(filepath.Ext(entry.Name()), packageFileExt) {
				found = append(found, full)
			}
		}
		return nil
	}

	if err := walk(cacheDir, 0); err != nil {
		return nil, err
	}

	return found, nil
}

func excluded(root, path string, patterns []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}
