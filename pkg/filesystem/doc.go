// Package filesystem provides the filesystem plumbing of the export pipeline.
//
// Every component reads and writes through an afero.Fs. NewOS returns the
// real filesystem; NewMemory an in-memory one for tests. Linker implements
// types.Linker on top of afero's optional symlink interfaces, so it works on
// the OS filesystem and reports "not a link" on filesystems without links.
package filesystem
