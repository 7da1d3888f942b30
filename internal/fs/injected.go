package fs

import "os"

// Injected wraps an [FS] and fails specific operations with scripted
// errors. Used by store tests to exercise the no-partial-write guarantees
// without touching a real failing disk.
//
// A nil hook passes the call through to the wrapped FS.
type Injected struct {
	FS FS

	ReadFileErr  func(path string) error
	WriteFileErr func(path string) error
	ReadDirErr   func(path string) error
}

// NewInjected wraps inner with no failures scripted.
func NewInjected(inner FS) *Injected {
	return &Injected{FS: inner}
}

func (i *Injected) ReadFile(path string) ([]byte, error) {
	if i.ReadFileErr != nil {
		if err := i.ReadFileErr(path); err != nil {
			return nil, err
		}
	}

	return i.FS.ReadFile(path)
}

func (i *Injected) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if i.WriteFileErr != nil {
		if err := i.WriteFileErr(path); err != nil {
			return err
		}
	}

	return i.FS.WriteFileAtomic(path, data, perm)
}

func (i *Injected) ReadDir(path string) ([]os.DirEntry, error) {
	if i.ReadDirErr != nil {
		if err := i.ReadDirErr(path); err != nil {
			return nil, err
		}
	}

	return i.FS.ReadDir(path)
}

func (i *Injected) MkdirAll(path string, perm os.FileMode) error {
	return i.FS.MkdirAll(path, perm)
}

func (i *Injected) Stat(path string) (os.FileInfo, error) {
	return i.FS.Stat(path)
}

func (i *Injected) Exists(path string) (bool, error) {
	return i.FS.Exists(path)
}

func (i *Injected) Remove(path string) error {
	return i.FS.Remove(path)
}

// Compile-time interface check.
var _ FS = (*Injected)(nil)
