// Test Type: Unit Test
// Description: Tests for the shared collaborator types

package types_test

import (
	"testing"

	"github.com/arthur-debert/srcexport/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestLinkKind_String(t *testing.T) {
	assert.Equal(t, "file", types.LinkFile.String())
	assert.Equal(t, "directory", types.LinkDirectory.String())
}

func TestNopSink(t *testing.T) {
	var sink types.EventSink = types.NopSink{}
	assert.NotPanics(t, func() {
		sink.Log(types.CategoryCopy, "a.txt")
	})
}
