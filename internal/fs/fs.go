// Package fs provides the filesystem abstraction the document store runs
// on, plus a fault-injecting wrapper for tests.
//
// The main types are:
//   - [FS]: the operations the store needs
//   - [Real]: production implementation over the os package
//   - [Injected]: wrapper that fails scripted operations
package fs

import "os"

// FS defines the filesystem operations the document store consumes. All
// methods mirror their os package equivalents; WriteFileAtomic is the one
// addition, because sheet writes must never be observable half-done.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data via a temp file and rename so a crash
	// can never leave a partial file behind.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// ReadDir reads a directory, entries sorted by name. See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a path exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory. See [os.Remove].
	Remove(path string) error
}
