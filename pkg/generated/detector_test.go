// Test Type: Unit Test
// Description: Tests generated-file detection by name and by content

package generated_test

import (
	"testing"

	"github.com/arthur-debert/srcexport/pkg/generated"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_IsGenerated(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    bool
	}{
		{"designer file", "Form1.Designer.cs", "class Form1 {}", true},
		{"g file", "App.g.cs", "", true},
		{"plain source", "Program.cs", "class Program {}\n", false},
		{"english banner", "Reference.cs", "// <auto-generated>\n//     This code was generated by a tool.\n", true},
		{"english banner upper case", "Ref.cs", "// THIS CODE WAS GENERATED BY A TOOL.\n", true},
		{"french banner", "Ref.cs", "//     Ce code a été généré par un outil.\r\n", true},
		{"autogenerated xml doc", "Ref.cs", "/// <autogenerated/>\n", true},
		{"antlr marker", "CalcParser.cs", "using System;\n// $ANTLR 3.1 Calc.g\n", true},
		{"marker on last line without newline", "x.cs", "a\nb\n<auto-generated", true},
		{"near miss", "x.cs", "This code was generated by hand.\n", false},
		{"empty file", "empty.cs", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			path := "/src/" + tt.file
			require.NoError(t, afero.WriteFile(fs, path, []byte(tt.content), 0644))

			d := generated.NewDetector(fs)
			assert.Equal(t, tt.want, d.IsGenerated(path, tt.file))
		})
	}
}

func TestDetector_DirectoriesAndMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/src/Views.g.dir", 0755))

	d := generated.NewDetector(fs)
	assert.False(t, d.IsGenerated("/src/Views.g.dir", "Views.g.dir"), "name rules are file-only")
	assert.False(t, d.IsGenerated("/src/missing.designer.cs", "missing.designer.cs"))
}
