package testutil

import (
	"sync"

	"github.com/arthur-debert/srcexport/pkg/types"
)

// ScriptedHasher delegates to Inner but reports a bogus digest for paths in
// Corrupt while Mismatches is positive. Each bogus digest uses up one
// mismatch.
type ScriptedHasher struct {
	Inner      types.Hasher
	Corrupt    map[string]bool
	Mismatches int

	mu    sync.Mutex
	calls int
}

// Checksum implements types.Hasher
func (h *ScriptedHasher) Checksum(path string) (string, error) {
	h.mu.Lock()
	h.calls++
	corrupt := h.Mismatches > 0 && (h.Corrupt == nil || h.Corrupt[path])
	if corrupt {
		h.Mismatches--
	}
	h.mu.Unlock()

	if corrupt {
		return "sha256:corrupted", nil
	}
	return h.Inner.Checksum(path)
}

// Calls returns the number of Checksum calls so far
func (h *ScriptedHasher) Calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

// Remaining returns the mismatches still to be reported
func (h *ScriptedHasher) Remaining() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Mismatches
}
