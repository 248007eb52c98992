package packages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilename(t *testing.T) {
	meta, ok := parseFilename("/root/.alpackages/Contoso_Sandwich Shop_1.2.3.4.app")
	require.True(t, ok)
	assert.Equal(t, "Contoso", meta.Publisher)
	assert.Equal(t, "Sandwich Shop", meta.Name)
	assert.Equal(t, Version{1, 2, 3, 4}, meta.Version)
}

func TestParseFilenameRejectsUnconventionalName(t *testing.T) {
	_, ok := parseFilename("/root/.alpackages/random-download.app")
	assert.False(t, ok)
}

func TestVersionCompare(t *testing.T) {
	assert.Equal(t, -1, Version{1, 0, 0, 0}.Compare(Version{1, 0, 0, 1}))
	assert.Equal(t, 0, Version{1, 0, 0, 0}.Compare(Version{1, 0, 0, 0}))
	assert.Equal(t, 1, Version{2, 0, 0, 0}.Compare(Version{1, 9, 9, 9}))
}

func TestFilterHighestVersions(t *testing.T) {
	candidates := []Metadata{
		{Publisher: "Contoso", Name: "App", Version: Version{1, 0, 0, 0}, FilePath: "old.app"},
		{Publisher: "Contoso", Name: "App", Version: Version{1, 2, 0, 0}, FilePath: "new.app"},
		{Publisher: "Fabrikam", Name: "Other", Version: Version{3, 0, 0, 0}, FilePath: "fab.app"},
	}

	kept := FilterHighestVersions(candidates, nil)
	require.Len(t, kept, 2)

	var gotNew bool
	for _, m := range kept {
		if m.Publisher == "Contoso" {
			assert.Equal(t, "new.app", m.FilePath)
			gotNew = true
		}
	}
	assert.True(t, gotNew)
}
