// Package export runs a source tree export.
//
// An Exporter is bound to one source root and one set of settings. Each
// call to Export walks the source tree, maps every kept entry to the
// destination through the text rewriter and copies it with the handler of
// its file type: project files are sanitized, text files rewritten, every
// other file copied and verified byte for byte.
//
// A run stops on the first I/O error and on a copy that cannot be verified.
// Project files that cannot be parsed are copied unchanged.
package export
