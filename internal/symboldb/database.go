// Package symboldb owns every loaded Symbol Object in memory and
// answers the low-level lookups the query engine composes into tools.
// It never performs I/O; every operation here is a pure in-memory
// lookup or mutation guarded by a single read/write mutex.
package symboldb

import (
	"strings"
	"sync"
	"time"

	"github.com/balsymbols/symbolindex/internal/symbols"
)

// idKey packs (Type, Id) into a single comparable map key, the same
// high-byte-tag packing EncodeObjectRef exposes externally as a
// base-63 string.
type idKey uint64

func packId(ref symbols.Ref) idKey {
	return idKey(uint64(ref.Type)<<56 | uint64(ref.Id))
}

// Stats summarizes the database's current contents, for diagnostics
// and the empty-database guard at the tool boundary.
type Stats struct {
	TotalObjects  int
	ObjectsByType map[symbols.ObjectType]int
	PackageCount  int
	LastInsertAt  time.Time
}

// Database is the in-memory symbol store. The zero value is not
// usable; construct with New.
type Database struct {
	mu sync.RWMutex

	byId        map[idKey]*symbols.Object
	byNameCI    map[string][]*symbols.Object
	byType      map[symbols.ObjectType][]*symbols.Object
	byPackage   map[string]map[idKey]struct{}

	fieldsByTable      map[string][]symbols.Field
	proceduresByObject map[string][]symbols.Procedure
	controlsByPage     map[string][]symbols.Control
	dataItemsByObject  map[string][]symbols.DataItem
	extensionsByBase   map[string][]*symbols.Object

	trie   *prefixTrie
	bloom  *bloomFilter
	secondaryDropped bool

	lastInsertAt time.Time
}

// New constructs an empty Database with secondary indices (trie,
// bloom filter) enabled.
func New() *Database {
	db := &Database{
		byId:               make(map[idKey]*symbols.Object),
		byNameCI:           make(map[string][]*symbols.Object),
		byType:             make(map[symbols.ObjectType][]*symbols.Object),
		byPackage:          make(map[string]map[idKey]struct{}),
		fieldsByTable:      make(map[string][]symbols.Field),
		proceduresByObject: make(map[string][]symbols.Procedure),
		controlsByPage:     make(map[string][]symbols.Control),
		dataItemsByObject:  make(map[string][]symbols.DataItem),
		extensionsByBase:   make(map[string][]*symbols.Object),
	}
	db.rebuildSecondaryLocked()
	return db
}

// Insert adds or replaces an object, keyed by (Type, Id) within its
// package. Idempotent: a second Insert of the same identity within the
// same package overwrites the first (last-write-wins).
func (db *Database) Insert(obj *symbols.Object) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.insertLocked(obj)
	db.lastInsertAt = time.Now()
}

func (db *Database) insertLocked(obj *symbols.Object) {
	key := packId(obj.Ref())

	if existing, ok := db.byId[key]; ok {
		db.removeFromSecondaryIndicesLocked(existing)
	}

	db.byId[key] = obj

	nameLower := strings.ToLower(obj.Name)
	db.byNameCI[nameLower] = appendUnique(db.byNameCI[nameLower], obj)
	db.byType[obj.Type] = appendUnique(db.byType[obj.Type], obj)

	pkgSet, ok := db.byPackage[obj.PackageName]
	if !ok {
		pkgSet = make(map[idKey]struct{})
		db.byPackage[obj.PackageName] = pkgSet
	}
	pkgSet[key] = struct{}{}

	if payload, ok := obj.Table(); ok {
		db.fieldsByTable[nameLower] = payload.Fields
	}
	if payload, ok := obj.Codeunit(); ok {
		db.proceduresByObject[nameLower] = payload.Procedures
	}
	if payload, ok := obj.Page(); ok {
		db.controlsByPage[nameLower] = payload.Controls
	}
	if payload, ok := obj.Report(); ok {
		db.dataItemsByObject[nameLower] = payload.DataItems
	}
	if payload, ok := obj.Payload.(symbols.QueryPayload); ok {
		db.dataItemsByObject[nameLower] = payload.DataItems
	}
	if payload, ok := obj.Payload.(symbols.XmlPortPayload); ok {
		db.dataItemsByObject[nameLower] = payload.DataItems
	}
	if payload, ok := interfaceProcedures(obj); ok {
		db.proceduresByObject[nameLower] = payload
	}

	if base, ok := obj.Extends(); ok {
		baseLower := strings.ToLower(base)
		db.extensionsByBase[baseLower] = appendUnique(db.extensionsByBase[baseLower], obj)
	}

	if !db.secondaryDropped {
		db.trie.insert(nameLower, obj)
		db.bloom.add(nameLower)
	}
}

func interfaceProcedures(obj *symbols.Object) ([]symbols.Procedure, bool) {
	p, ok := obj.Payload.(symbols.InterfacePayload)
	if !ok {
		return nil, false
	}
	return p.Procedures, true
}

// EvictPackage removes every object belonging to packageName, updating
// every index, and leaves other packages' indices untouched.
func (db *Database) EvictPackage(packageName string) {
	db.mu.Lock()
	defer db.mu.Unlock()

	keys, ok := db.byPackage[packageName]
	if !ok {
		return
	}
	for key := range keys {
		obj, ok := db.byId[key]
		if !ok {
			continue
		}
		db.removeObjectLocked(obj, key)
	}
	delete(db.byPackage, packageName)
}

func (db *Database) removeObjectLocked(obj *symbols.Object, key idKey) {
	delete(db.byId, key)

	nameLower := strings.ToLower(obj.Name)
	db.byNameCI[nameLower] = removeObject(db.byNameCI[nameLower], obj)
	if len(db.byNameCI[nameLower]) == 0 {
		delete(db.byNameCI, nameLower)
	}
	db.byType[obj.Type] = removeObject(db.byType[obj.Type], obj)

	delete(db.fieldsByTable, nameLower)
	delete(db.proceduresByObject, nameLower)
	delete(db.controlsByPage, nameLower)
	delete(db.dataItemsByObject, nameLower)

	if base, ok := obj.Extends(); ok {
		baseLower := strings.ToLower(base)
		db.extensionsByBase[baseLower] = removeObject(db.extensionsByBase[baseLower], obj)
		if len(db.extensionsByBase[baseLower]) == 0 {
			delete(db.extensionsByBase, baseLower)
		}
	}

	db.removeFromSecondaryIndicesLocked(obj)
}

func (db *Database) removeFromSecondaryIndicesLocked(obj *symbols.Object) {
	if db.secondaryDropped {
		return
	}
	db.trie.remove(strings.ToLower(obj.Name), obj)
	// Bloom filters do not support removal; a stale positive only costs
	// an extra byNameCI probe, never a correctness issue.
}

// GetById returns the object identified by ref, if loaded.
func (db *Database) GetById(ref symbols.Ref) (*symbols.Object, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	obj, ok := db.byId[packId(ref)]
	return obj, ok
}

// GetByName returns every object whose Name matches name
// case-insensitively.
func (db *Database) GetByName(name string) []*symbols.Object {
	db.mu.RLock()
	defer db.mu.RUnlock()

	lower := strings.ToLower(name)
	if !db.secondaryDropped && !db.bloom.mightContain(lower) {
		return nil
	}
	return cloneSlice(db.byNameCI[lower])
}

// GetByType returns every object of the given kind.
func (db *Database) GetByType(t symbols.ObjectType) []*symbols.Object {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return cloneSlice(db.byType[t])
}

// GetExtensions returns every extension object whose Extends property
// matches baseName case-insensitively.
func (db *Database) GetExtensions(baseName string) []*symbols.Object {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return cloneSlice(db.extensionsByBase[strings.ToLower(baseName)])
}

// Stats returns a snapshot of database-wide counters.
func (db *Database) Stats() Stats {
	db.mu.RLock()
	defer db.mu.RUnlock()

	byType := make(map[symbols.ObjectType]int, len(db.byType))
	total := 0
	for t, objs := range db.byType {
		byType[t] = len(objs)
		total += len(objs)
	}

	return Stats{
		TotalObjects:  total,
		ObjectsByType: byType,
		PackageCount:  len(db.byPackage),
		LastInsertAt:  db.lastInsertAt,
	}
}

// DropSecondaryIndices discards the prefix trie and bloom filter to
// relieve memory pressure. Search falls back to a full byNameCI scan
// until RebuildSecondaryIndices is called.
func (db *Database) DropSecondaryIndices() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.secondaryDropped = true
	db.trie = nil
	db.bloom = nil
}

// RebuildSecondaryIndices reconstructs the trie and bloom filter from
// the current byNameCI contents.
func (db *Database) RebuildSecondaryIndices() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.rebuildSecondaryLocked()
}

func (db *Database) rebuildSecondaryLocked() {
	db.trie = newPrefixTrie()
	db.bloom = newBloomFilter(bloomDefaultSize)
	db.secondaryDropped = false
	for nameLower, objs := range db.byNameCI {
		db.bloom.add(nameLower)
		for _, obj := range objs {
			db.trie.insert(nameLower, obj)
		}
	}
}

func appendUnique(list []*symbols.Object, obj *symbols.Object) []*symbols.Object {
	for i, existing := range list {
		if existing.Ref() == obj.Ref() && existing.PackageName == obj.PackageName {
			list[i] = obj
			return list
		}
	}
	return append(list, obj)
}

func removeObject(list []*symbols.Object, obj *symbols.Object) []*symbols.Object {
	out := list[:0]
	for _, existing := range list {
		if existing.Ref() == obj.Ref() && existing.PackageName == obj.PackageName {
			continue
		}
		out = append(out, existing)
	}
	return out
}

func cloneSlice(list []*symbols.Object) []*symbols.Object {
	if len(list) == 0 {
		return nil
	}
	out := make([]*symbols.Object, len(list))
	copy(out, list)
	return out
}
