// Test Type: Unit Test
// Description: Tests the shared test helpers

package testutil_test

import (
	"testing"

	"github.com/arthur-debert/srcexport/pkg/internal/hashutil"
	"github.com/arthur-debert/srcexport/pkg/testutil"
	"github.com/arthur-debert/srcexport/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnvironment_FileTree(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"a.txt": "A",
		"sub": testutil.FileTree{
			"b.txt": "B",
		},
		"deep/c.txt": "C",
	})

	data, err := afero.ReadFile(env.FS, env.Source("sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "B", string(data))

	exists, err := afero.Exists(env.FS, env.Source("deep", "c.txt"))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = afero.DirExists(env.FS, env.DestRoot)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRecordingSink(t *testing.T) {
	sink := &testutil.RecordingSink{}
	sink.Log(types.CategoryInclude, "a")
	sink.Log(types.CategoryExclude, "b")
	sink.Log(types.CategoryInclude, "c")

	assert.Equal(t, []string{"a", "c"}, sink.Values(types.CategoryInclude))
	assert.Equal(t, 1, sink.Count(types.CategoryExclude))
	assert.Len(t, sink.Events(), 3)
}

func TestScriptedHasher(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/b", []byte("x"), 0644))

	h := &testutil.ScriptedHasher{
		Inner:      hashutil.NewFileHasher(fs),
		Corrupt:    map[string]bool{"/b": true},
		Mismatches: 1,
	}

	a, err := h.Checksum("/a")
	require.NoError(t, err)
	b, err := h.Checksum("/b")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 0, h.Remaining())

	b, err = h.Checksum("/b")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 3, h.Calls())
}
