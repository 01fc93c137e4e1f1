package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// coreImports returns every import path used by non-test files in pkg/core.
func coreImports(t *testing.T) map[string][]string {
	t.Helper()

	fset := token.NewFileSet()
	coreDir := "."

	entries, err := os.ReadDir(coreDir)
	if err != nil {
		t.Fatalf("Failed to read core directory: %v", err)
	}

	imports := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		// Skip test files
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(coreDir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}

		for _, imp := range f.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			imports[entry.Name()] = append(imports[entry.Name()], importPath)
		}
	}
	return imports
}

// TestCoreImportsOnly verifies pkg/core only imports the standard library.
// The Golden Rule: pkg/core imports ONLY stdlib.
func TestCoreImportsOnly(t *testing.T) {
	for file, paths := range coreImports(t) {
		for _, importPath := range paths {
			// Stdlib paths have no dot in the first element
			if !strings.Contains(strings.Split(importPath, "/")[0], ".") {
				continue
			}
			t.Errorf("%s imports forbidden package: %s", file, importPath)
		}
	}
}

// TestCoreDoesNotLog verifies pkg/core stays free of side effects.
func TestCoreDoesNotLog(t *testing.T) {
	forbidden := map[string]bool{
		"log":       true,
		"log/slog":  true,
		"os":        true,
		"math/rand": true,
	}
	for file, paths := range coreImports(t) {
		for _, importPath := range paths {
			if forbidden[importPath] {
				t.Errorf("%s imports %s (core must be pure)", file, importPath)
			}
		}
	}
}
