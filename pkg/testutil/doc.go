// Package testutil provides utilities for testing export components.
//
// Key components:
//   - TestEnvironment: source and destination roots on a memory or real filesystem
//   - FileTree: declarative directory trees
//   - RecordingSink: an event sink that keeps every event for assertions
//   - ScriptedHasher: a hasher that reports a fixed number of bad digests
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Only tests that need real symbolic links should use EnvIsolated
//   - All test data should be defined inline, not in external files
package testutil
