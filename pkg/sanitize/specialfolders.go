package sanitize

import (
	"os"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/srcexport/pkg/errors"
)

// FolderLookup resolves one special folder. A lookup that fails or returns
// an empty path counts as no match.
type FolderLookup func() (string, error)

// windowsFolderVariables name the shared and system locations of a Windows
// machine
var windowsFolderVariables = []string{
	"ProgramFiles",
	"ProgramFiles(x86)",
	"ProgramW6432",
	"CommonProgramFiles",
	"CommonProgramFiles(x86)",
	"CommonProgramW6432",
	"ProgramData",
	"ALLUSERSPROFILE",
	"PUBLIC",
	"SystemRoot",
	"windir",
}

// unixFolders are the shared install locations of unix-like systems
var unixFolders = []string{
	"/usr",
	"/usr/local",
	"/opt",
	"/Library",
	"/Applications",
	"/System",
}

// DefaultSpecialFolders returns the shared and system folder lookups of the
// running platform
func DefaultSpecialFolders() []FolderLookup {
	var lookups []FolderLookup
	if runtime.GOOS == "windows" {
		for _, name := range windowsFolderVariables {
			lookups = append(lookups, EnvFolder(name))
		}
		return lookups
	}

	for _, dir := range unixFolders {
		lookups = append(lookups, StaticFolder(dir))
	}
	for _, dirs := range [][]string{xdg.DataDirs, xdg.ConfigDirs, xdg.ApplicationDirs, xdg.FontDirs} {
		for _, dir := range dirs {
			lookups = append(lookups, StaticFolder(dir))
		}
	}
	return lookups
}

// EnvFolder looks a folder up from an environment variable
func EnvFolder(name string) FolderLookup {
	return func() (string, error) {
		value, ok := os.LookupEnv(name)
		if !ok {
			return "", errors.Newf(errors.ErrNotFound, "environment variable %s is not set", name)
		}
		return value, nil
	}
}

// StaticFolder always resolves to dir
func StaticFolder(dir string) FolderLookup {
	return func() (string, error) {
		return dir, nil
	}
}
