package testutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment holds a source and a destination root on one filesystem
type TestEnvironment struct {
	SourceRoot string
	DestRoot   string

	FS     afero.Fs
	Events *RecordingSink

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. The source root exists,
// the destination root does not.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:      t,
		Type:   envType,
		Events: &RecordingSink{},
	}

	switch envType {
	case EnvMemoryOnly:
		env.FS = afero.NewMemMapFs()
		env.SourceRoot = "/work/src"
		env.DestRoot = "/work/out"
	case EnvIsolated:
		base := t.TempDir()
		env.FS = afero.NewOsFs()
		env.SourceRoot = filepath.Join(base, "src")
		env.DestRoot = filepath.Join(base, "out")
	default:
		t.Fatalf("unknown environment type %d", envType)
	}

	if err := env.FS.MkdirAll(env.SourceRoot, 0755); err != nil {
		t.Fatalf("Failed to create source root: %v", err)
	}
	return env
}

// WithFileTree creates tree below the source root
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	CreateFileTree(env.t, env.FS, env.SourceRoot, tree)
}

// Source returns a path below the source root
func (env *TestEnvironment) Source(parts ...string) string {
	return filepath.Join(append([]string{env.SourceRoot}, parts...)...)
}

// Dest returns a path below the destination root
func (env *TestEnvironment) Dest(parts ...string) string {
	return filepath.Join(append([]string{env.DestRoot}, parts...)...)
}

// Symlink creates a real link; the test is skipped where links need
// privileges.
func (env *TestEnvironment) Symlink(target, link string) {
	env.t.Helper()
	if env.Type != EnvIsolated {
		env.t.Fatalf("symbolic links need an isolated environment")
	}
	if runtime.GOOS == "windows" {
		env.t.Skip("symbolic links need privileges on windows")
	}
	linker, ok := env.FS.(afero.Linker)
	if !ok {
		env.t.Fatalf("filesystem %s cannot create links", env.FS.Name())
	}
	if err := linker.SymlinkIfPossible(target, link); err != nil {
		env.t.Fatalf("Failed to create link %s: %v", link, err)
	}
}

// ReadDest returns the content of a destination file
func (env *TestEnvironment) ReadDest(parts ...string) string {
	env.t.Helper()
	data, err := afero.ReadFile(env.FS, env.Dest(parts...))
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", env.Dest(parts...), err)
	}
	return string(data)
}

// FileTree represents a directory structure for testing. A string value is
// a file with that content, a FileTree value is a directory.
type FileTree map[string]interface{}

// CreateFileTree recursively creates a file tree
func CreateFileTree(t *testing.T, fs afero.Fs, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", filepath.Dir(fullPath), err)
			}
			if err := afero.WriteFile(fs, fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			CreateFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
