package pathutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestToRelative(t *testing.T) {
	tests := []struct {
		name     string
		absPath  string
		rootDir  string
		expected string
	}{
		{
			name:     "simple relative path",
			absPath:  "/home/user/project/.alpackages/Base.app",
			rootDir:  "/home/user/project",
			expected: ".alpackages/Base.app",
		},
		{
			name:     "nested relative path",
			absPath:  "/home/user/project/.alpackages/vendor/Extra.app",
			rootDir:  "/home/user/project",
			expected: ".alpackages/vendor/Extra.app",
		},
		{
			name:     "root level file",
			absPath:  "/home/user/project/Base.app",
			rootDir:  "/home/user/project",
			expected: "Base.app",
		},
		{
			name:     "same directory",
			absPath:  "/home/user/project",
			rootDir:  "/home/user/project",
			expected: ".",
		},
		{
			name:     "already relative path",
			absPath:  ".alpackages/Base.app",
			rootDir:  "/home/user/project",
			expected: ".alpackages/Base.app",
		},
		{
			name:     "path outside root - fallback to absolute",
			absPath:  "/other/location/Base.app",
			rootDir:  "/home/user/project",
			expected: "/other/location/Base.app",
		},
		{
			name:     "empty root directory",
			absPath:  "/home/user/project/Base.app",
			rootDir:  "",
			expected: "/home/user/project/Base.app",
		},
		{
			name:     "empty absolute path",
			absPath:  "",
			rootDir:  "/home/user/project",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToRelative(tt.absPath, tt.rootDir)

			if runtime.GOOS == "windows" {
				result = filepath.ToSlash(result)
				expected := filepath.ToSlash(tt.expected)
				if result != expected {
					t.Errorf("ToRelative() = %v, want %v", result, expected)
				}
			} else {
				if result != tt.expected {
					t.Errorf("ToRelative() = %v, want %v", result, tt.expected)
				}
			}
		})
	}
}

func TestToRelativePaths(t *testing.T) {
	rootDir := "/home/user/project"
	input := []string{
		"/home/user/project/.alpackages/Base.app",
		"/home/user/project/.alpackages/vendor/Extra.app",
		"/other/location/Stray.app",
	}

	results := ToRelativePaths(input, rootDir)

	expected := []string{
		".alpackages/Base.app",
		".alpackages/vendor/Extra.app",
		"/other/location/Stray.app",
	}

	if len(results) != len(expected) {
		t.Fatalf("expected %d results, got %d", len(expected), len(results))
	}
	for i, got := range results {
		if got != expected[i] {
			t.Errorf("result %d = %v, want %v", i, got, expected[i])
		}
	}
}

func TestToRelativePathsEmptySlice(t *testing.T) {
	result := ToRelativePaths(nil, "/home/user/project")
	if len(result) != 0 {
		t.Errorf("expected empty slice, got %d elements", len(result))
	}
}
