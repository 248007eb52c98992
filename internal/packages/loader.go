// Package packages orchestrates package discovery, version resolution,
// and load/reload into the symbol database.
package packages

import (
	"context"
	"runtime"
	"sort"
	"time"

	"github.com/balsymbols/symbolindex/internal/archive"
	"github.com/balsymbols/symbolindex/internal/config"
	"github.com/balsymbols/symbolindex/internal/engineerr"
	"github.com/balsymbols/symbolindex/internal/manifest"
	"github.com/balsymbols/symbolindex/internal/symboldb"
	"github.com/balsymbols/symbolindex/internal/symbols"
	"golang.org/x/sync/semaphore"
)

// PackageLoadError names one package file that failed to load and why.
type PackageLoadError struct {
	Path string
	Err  error
}

// LoadReport summarizes one loadPackages call.
type LoadReport struct {
	Loaded     []string
	Skipped    []string
	Errors     []PackageLoadError
	DurationMs float64
}

// Manager owns the loaded-package bookkeeping (fingerprints, currently
// resident (Publisher,Name) versions) on top of a shared Database.
type Manager struct {
	db           *symboldb.Database
	interner     *symbols.Interner
	fingerprints *FingerprintCache
	sem          *semaphore.Weighted

	resident map[groupKey]Metadata // currently loaded version per logical package
}

// NewManager constructs a Manager writing into db.
func NewManager(db *symboldb.Database) *Manager {
	return &Manager{
		db:           db,
		interner:     symbols.NewInterner(),
		fingerprints: NewFingerprintCache(),
		sem:          semaphore.NewWeighted(int64(parallelLoaders())),
		resident:     make(map[groupKey]Metadata),
	}
}

func parallelLoaders() int {
	if n := runtime.NumCPU(); n < 4 {
		return n
	}
	return 4
}

// LoadPackages loads every path, skipping any whose fingerprint is
// unchanged since its last successful load unless forceReload is set.
// Decoding for distinct packages runs concurrently, gated by a bounded
// semaphore; each worker only decodes into a local buffer and never
// touches the Manager's resident-package bookkeeping or the database
// directly. Committing a decoded package (eviction of its prior
// version, the resident-map update, and the inserts) happens only on
// this single collecting goroutine, so resident — a plain map — never
// sees a concurrent write.
func (m *Manager) LoadPackages(ctx context.Context, paths []string, forceReload bool) (*LoadReport, error) {
	start := time.Now()
	report := &LoadReport{}

	type outcome struct {
		path        string
		skipped     bool
		err         error
		packageName string
		hasMeta     bool
		meta        Metadata
		objects     []*symbols.Object
	}
	results := make(chan outcome, len(paths))

	for _, path := range paths {
		path := path
		if !forceReload && m.fingerprints.Unchanged(path) {
			results <- outcome{path: path, skipped: true}
			continue
		}

		if err := m.sem.Acquire(ctx, 1); err != nil {
			results <- outcome{path: path, err: err}
			continue
		}

		go func() {
			defer m.sem.Release(1)
			packageName, hasMeta, meta, objects, err := m.decodeOne(path)
			results <- outcome{
				path:        path,
				err:         err,
				packageName: packageName,
				hasMeta:     hasMeta,
				meta:        meta,
				objects:     objects,
			}
		}()
	}

	for range paths {
		o := <-results
		switch {
		case o.skipped:
			report.Skipped = append(report.Skipped, o.path)
		case o.err != nil:
			report.Errors = append(report.Errors, PackageLoadError{Path: o.path, Err: o.err})
		default:
			m.commitLoad(o.packageName, o.hasMeta, o.meta, o.objects)
			report.Loaded = append(report.Loaded, o.path)
		}
	}

	report.DurationMs = float64(time.Since(start).Microseconds()) / 1000.0
	return report, nil
}

// decodeOne decodes a single package file into a local buffer of
// objects without touching the database or the resident map, so it is
// safe to call from any number of concurrent workers. A decoder
// failure leaves every shared state untouched for this package.
func (m *Manager) decodeOne(path string) (packageName string, hasMeta bool, meta Metadata, objects []*symbols.Object, err error) {
	meta, hasMeta = parseFilename(path)
	packageName = meta.Name
	if !hasMeta {
		packageName = path
	}

	stream, err := archive.OpenManifestStream(path)
	if err != nil {
		return packageName, hasMeta, meta, nil, err
	}
	defer stream.Close()

	_, err = manifest.Decode(stream, packageName, m.interner, func(obj *symbols.Object) {
		objects = append(objects, obj)
	})
	if err != nil {
		return packageName, hasMeta, meta, nil, engineerr.Wrap(engineerr.DecodeError, err, "decode package %q", path)
	}

	if err := m.fingerprints.Record(path); err != nil {
		return packageName, hasMeta, meta, nil, engineerr.Wrap(engineerr.IoError, err, "record fingerprint for %q", path)
	}

	return packageName, hasMeta, meta, objects, nil
}

// commitLoad applies one decoded package's objects to the database
// and updates resident-package bookkeeping. Called only from
// LoadPackages' single collecting goroutine — never concurrently.
func (m *Manager) commitLoad(packageName string, hasMeta bool, meta Metadata, objects []*symbols.Object) {
	if hasMeta {
		key := groupKey{Publisher: meta.Publisher, Name: meta.Name}
		if _, loaded := m.resident[key]; loaded {
			m.db.EvictPackage(packageName)
		}
		m.resident[key] = meta
	} else {
		m.db.EvictPackage(packageName)
	}

	for _, obj := range objects {
		m.db.Insert(obj)
	}
}

// ListLoaded returns the metadata of every package currently resident
// in the database, sorted by (Publisher, Name).
func (m *Manager) ListLoaded() []Metadata {
	out := make([]Metadata, 0, len(m.resident))
	for _, meta := range m.resident {
		out = append(out, meta)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Publisher != out[j].Publisher {
			return out[i].Publisher < out[j].Publisher
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AutoDiscover discovers, version-filters, and loads every package
// under root per the currently active configuration.
func (m *Manager) AutoDiscover(ctx context.Context, root string, cfg *config.Config) (*LoadReport, error) {
	paths, err := Discover(root, cfg)
	if err != nil {
		return nil, err
	}

	var parsed []Metadata
	var unparsed []string
	for _, p := range paths {
		if meta, ok := parseFilename(p); ok {
			parsed = append(parsed, meta)
		} else {
			unparsed = append(unparsed, p)
		}
	}

	kept := FilterHighestVersions(parsed, unparsed)
	var keptPaths []string
	for _, m := range kept {
		keptPaths = append(keptPaths, m.FilePath)
	}
	keptPaths = append(keptPaths, unparsed...)

	return m.LoadPackages(ctx, keptPaths, cfg.ForceReload)
}
