package types

// EventSink receives the discrete events an export run reports. It is
// write-only from the pipeline's point of view and never influences control
// flow.
type EventSink interface {
	Log(category Category, value string)
}

// Linker is the symbolic-link capability. The pipeline only consults it when
// symbolic links are kept.
type Linker interface {
	// IsSymbolicLink reports whether path itself is a link (not followed).
	IsSymbolicLink(path string) bool

	// ResolveLinkTarget returns the target the link at path points to.
	ResolveLinkTarget(path string) (string, error)

	// CreateLink creates a link at path pointing to target.
	CreateLink(path, target string, kind LinkKind) error
}

// TextSniffer decides whether a file is perceived as text.
type TextSniffer interface {
	IsProbablyText(path string) bool
}

// Hasher computes a content digest for a file.
type Hasher interface {
	Checksum(path string) (string, error)
}

// LinkKind tells CreateLink whether the link stands for a file or a directory.
type LinkKind int

const (
	LinkFile LinkKind = iota
	LinkDirectory
)

// String returns the lower-case name of the kind
func (k LinkKind) String() string {
	if k == LinkDirectory {
		return "directory"
	}
	return "file"
}
