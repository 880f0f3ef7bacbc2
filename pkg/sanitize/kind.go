package sanitize

import (
	"path/filepath"
	"strings"
)

// Kind selects the handler for a file
type Kind int

const (
	KindGeneric Kind = iota
	KindSolution
	KindInstallerProject
	KindXMLProject
	KindLegacyXMLProject
)

var kindsByExtension = map[string]Kind{
	".sln":     KindSolution,
	".vdproj":  KindInstallerProject,
	".csproj":  KindXMLProject,
	".vbproj":  KindXMLProject,
	".dbproj":  KindXMLProject,
	".vcxproj": KindXMLProject,
	".cfxproj": KindXMLProject,
	".wixproj": KindXMLProject,
	".vcproj":  KindLegacyXMLProject,
}

// KindFor returns the kind of the file at path, by extension and ignoring case
func KindFor(path string) Kind {
	return kindsByExtension[strings.ToLower(filepath.Ext(path))]
}

// String returns a readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindSolution:
		return "solution"
	case KindInstallerProject:
		return "installer-project"
	case KindXMLProject:
		return "xml-project"
	case KindLegacyXMLProject:
		return "legacy-xml-project"
	default:
		return "generic"
	}
}
