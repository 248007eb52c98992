package packages

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Version is a dotted four-component version, compared component by
// component as the canonical BAL package versioning scheme requires.
type Version [4]int

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater
// than other.
func (v Version) Compare(other Version) int {
	for i := 0; i < 4; i++ {
		if v[i] != other[i] {
			if v[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (v Version) String() string {
	parts := make([]string, 4)
	for i, c := range v {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ".")
}

// Dependency names another package a loaded package declares a
// (purely informational) dependency on.
type Dependency struct {
	Publisher  string
	Name       string
	MinVersion Version
}

// Metadata is the package-level identity extracted from a package
// file's conventional name, "<Publisher>_<Name>_<Version>.app" — the
// naming scheme every BAL compiler emits compiled packages under.
type Metadata struct {
	FilePath  string
	Publisher string
	Name      string
	Version   Version
}

// parseFilename extracts Publisher, Name, and Version from a package
// file's base name. Returns ok=false for a file that does not follow
// the conventional naming scheme; such files are still loadable, they
// simply cannot participate in version-resolution grouping.
func parseFilename(path string) (Metadata, bool) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(base, "_")
	if len(parts) < 3 {
		return Metadata{}, false
	}

	versionStr := parts[len(parts)-1]
	publisher := parts[0]
	name := strings.Join(parts[1:len(parts)-1], "_")

	version, ok := parseVersion(versionStr)
	if !ok {
		return Metadata{}, false
	}

	return Metadata{FilePath: path, Publisher: publisher, Name: name, Version: version}, true
}

func parseVersion(s string) (Version, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return Version{}, false
	}
	var v Version
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, false
		}
		v[i] = n
	}
	return v, true
}
