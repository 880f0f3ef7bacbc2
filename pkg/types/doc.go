// Package types defines the collaborator interfaces shared by the export
// pipeline: the event sink, the symbolic-link capability, the content-type
// sniffer and the file hasher, plus the event categories.
package types
