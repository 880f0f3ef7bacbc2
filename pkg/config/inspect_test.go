// Test Type: Unit Test
// Description: Tests for project identifier inspection

package config

import (
	"testing"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectProject(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/App.Core.csproj", []byte(`<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="4.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup>
    <ProjectGuid>{8A2B6A0E-1F3C-4D5E-9A7B-1C2D3E4F5A6B}</ProjectGuid>
  </PropertyGroup>
</Project>`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/src/Native.vcproj", []byte("<?xml version=\"1.0\" encoding=\"Windows-1252\"?>\r\n"+
		"<VisualStudioProject ProjectType=\"Visual C++\" Name=\"Caf\xe9\" ProjectGUID=\"{11111111-2222-3333-4444-555555555555}\"></VisualStudioProject>\r\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/src/NoGuid.csproj", []byte(`<Project><PropertyGroup /></Project>`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/src/Bad.csproj", []byte(`<Project><ProjectGuid>nope</ProjectGuid></Project>`), 0644))

	t.Run("msbuild project", func(t *testing.T) {
		p, err := InspectProject(fs, "/src/App.Core.csproj")
		require.NoError(t, err)
		assert.Equal(t, Project{ID: "8a2b6a0e-1f3c-4d5e-9a7b-1c2d3e4f5a6b", Name: "App.Core"}, p)
	})

	t.Run("legacy project", func(t *testing.T) {
		p, err := InspectProject(fs, "/src/Native.vcproj")
		require.NoError(t, err)
		assert.Equal(t, "11111111-2222-3333-4444-555555555555", p.ID)
		assert.Equal(t, "Native", p.Name)
	})

	t.Run("no guid", func(t *testing.T) {
		_, err := InspectProject(fs, "/src/NoGuid.csproj")
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("invalid guid", func(t *testing.T) {
		_, err := InspectProject(fs, "/src/Bad.csproj")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := InspectProject(fs, "/src/Missing.csproj")
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	})
}
