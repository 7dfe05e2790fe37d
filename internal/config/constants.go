package config

// Version is the interpreter release version.
const Version = "0.1.0"

const SourceFileExt = ".lory"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".lory", ".ly"}

// HasSourceExt checks whether a path ends in a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}
