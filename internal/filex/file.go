// Package filex provides small filesystem helpers.
package filex

import "os"

// FileExists reports whether path names an existing regular file. Directories
// do not count: a TLS certificate path pointing at a directory is as unusable
// as a missing one.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
