// Test Type: Integration Test
// Description: Tests the command line end to end on real temporary trees

package srcexport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/srcexport/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRun_UsageRequest(t *testing.T) {
	for _, args := range [][]string{{"/?"}, {"-?"}, {"src", "dst", "-?"}} {
		code, stdout, _ := run(t, args...)
		assert.Equal(t, 0, code)
		assert.Equal(t, MsgUsage, stdout)
	}
}

func TestRun_NoArgumentsPrintsHelp(t *testing.T) {
	code, stdout, _ := run(t)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "srcexport <source> <destination> [settings]")
	assert.Contains(t, stdout, "defaults")
}

func TestRun_WrongArgumentCount(t *testing.T) {
	for _, args := range [][]string{{"only-source"}, {"a", "b", "c", "d"}} {
		code, _, stderr := run(t, args...)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "expected <source> <destination> [settings]")
	}
}

func TestRun_Export(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src")
	dst := filepath.Join(base, "out")
	writeFile(t, filepath.Join(src, "readme.txt"), "hello")
	writeFile(t, filepath.Join(src, "lib", "Code.cs"), "class Code {}")
	writeFile(t, filepath.Join(src, "bin", "App.exe"), "MZ")
	writeFile(t, filepath.Join(src, "App.suo"), "x")

	code, stdout, stderr := run(t, "-o", "text", src, dst)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Directories: 1\nFiles: 2\n")

	data, err := os.ReadFile(filepath.Join(dst, "lib", "Code.cs"))
	require.NoError(t, err)
	assert.Equal(t, "class Code {}", string(data))
	_, err = os.Stat(filepath.Join(dst, "bin"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_ExportWithSettings(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src")
	dst := filepath.Join(base, "out")
	settings := filepath.Join(base, "settings.yaml")
	writeFile(t, filepath.Join(src, "Acme.txt"), "Acme Inc.")
	writeFile(t, filepath.Join(src, "skip.log"), "x")
	writeFile(t, settings, "rules:\n  - pattern: '*.log'\nreplacements:\n  - search: Acme\n    replace: Contoso\n")

	code, stdout, stderr := run(t, "--output", "text", src, dst, settings)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Files: 1\n")

	data, err := os.ReadFile(filepath.Join(dst, "Contoso.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Contoso Inc.", string(data))
}

func TestRun_ExportErrors(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src")
	writeFile(t, filepath.Join(src, "a.txt"), "a")
	bad := filepath.Join(base, "bad.toml")
	writeFile(t, bad, "[[rules]]\npattern = '('\nexpression = 'regex'\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid settings", []string{src, filepath.Join(base, "out"), bad}, "failed to load settings"},
		{"missing settings", []string{src, filepath.Join(base, "out"), filepath.Join(base, "none.toml")}, "failed to load settings"},
		{"destination inside source", []string{src, filepath.Join(src, "out")}, "export failed"},
		{"bad output format", []string{"-o", "html", src, filepath.Join(base, "out")}, "invalid format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestDefaultsCmd(t *testing.T) {
	code, stdout, _ := run(t, "defaults")
	require.Equal(t, 0, code)
	assert.Equal(t, config.DefaultContent(), stdout)

	code, stdout, _ = run(t, "defaults", "--format", "yaml")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "compute_hash: true")

	code, stdout, _ = run(t, "defaults", "-f", "xml")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "<Settings")
	assert.Contains(t, stdout, `RemoveTfsBinding="true"`)

	code, _, stderr := run(t, "defaults", "-f", "ini")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid format")
}

func TestDefaultsCmd_OutputLoadsBack(t *testing.T) {
	for _, format := range []string{"toml", "yaml", "xml"} {
		t.Run(format, func(t *testing.T) {
			code, stdout, _ := run(t, "defaults", "--format", format)
			require.Equal(t, 0, code)

			path := filepath.Join(t.TempDir(), "settings."+format)
			writeFile(t, path, stdout)
			s, err := config.Load(path)
			require.NoError(t, err)
			assert.Len(t, s.Rules, 76)
		})
	}
}

func TestInspectCmd(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "Legacy.Tools.csproj")
	writeFile(t, project, `<Project xmlns="http://schemas.microsoft.com/developer/msbuild/2003"><PropertyGroup><ProjectGuid>{8A2B6A0E-1F3C-4D5E-9A7B-1C2D3E4F5A6B}</ProjectGuid></PropertyGroup></Project>`)

	code, stdout, stderr := run(t, "inspect", project)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "[[excluded_projects]]")
	assert.Contains(t, stdout, "8a2b6a0e-1f3c-4d5e-9a7b-1c2d3e4f5a6b")
	assert.Contains(t, stdout, "Legacy.Tools")

	code, _, stderr = run(t, "inspect", filepath.Join(dir, "missing.csproj"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to inspect")
}

func TestVersionCmd(t *testing.T) {
	code, stdout, _ := run(t, "version")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "srcexport version dev")
}

func TestManCmd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "man")
	code, _, stderr := run(t, "man", dir)
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, filepath.Join(dir, "srcexport.1"))
	assert.FileExists(t, filepath.Join(dir, "srcexport-defaults.1"))
}

func TestCompletionCmd(t *testing.T) {
	code, stdout, _ := run(t, "completion", "bash")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "srcexport")
}
