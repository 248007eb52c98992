package symboldb

import (
	"strings"

	"github.com/balsymbols/symbolindex/internal/symbols"
)

// FieldsByTable returns the ordered field list for the table or table
// extension named tableName, if loaded.
func (db *Database) FieldsByTable(tableName string) ([]symbols.Field, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fields, ok := db.fieldsByTable[strings.ToLower(tableName)]
	return fields, ok
}

// ProceduresByObject returns the ordered procedure list declared by the
// codeunit or interface named objectName, if loaded.
func (db *Database) ProceduresByObject(objectName string) ([]symbols.Procedure, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	procs, ok := db.proceduresByObject[strings.ToLower(objectName)]
	return procs, ok
}

// ControlsByPage returns the control tree declared by the page or page
// extension named pageName, if loaded.
func (db *Database) ControlsByPage(pageName string) ([]symbols.Control, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	controls, ok := db.controlsByPage[strings.ToLower(pageName)]
	return controls, ok
}

// DataItemsByObject returns the dataset tree declared by the report,
// query, or xmlport named objectName, if loaded.
func (db *Database) DataItemsByObject(objectName string) ([]symbols.DataItem, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	items, ok := db.dataItemsByObject[strings.ToLower(objectName)]
	return items, ok
}

// AllObjects returns every loaded object, in no particular order. Used
// by callers (domain classification) that must scan the whole
// database rather than a single index.
func (db *Database) AllObjects() []*symbols.Object {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]*symbols.Object, 0, len(db.byId))
	for _, obj := range db.byId {
		out = append(out, obj)
	}
	return out
}

// AllNames returns one representative Name per distinct case-insensitive
// name currently loaded, for did-you-mean suggestion candidates.
func (db *Database) AllNames() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	names := make([]string, 0, len(db.byNameCI))
	for _, objs := range db.byNameCI {
		if len(objs) > 0 {
			names = append(names, objs[0].Name)
		}
	}
	return names
}
