// Package store reads and writes unit sheets on disk.
//
// One markdown file per unit, all in one directory. The store treats sheet
// text as opaque: parsing and patching are the engine's job, this layer
// only guarantees that every write lands atomically and that a
// read-transform-write runs under an exclusive per-sheet lock. Two
// concurrent actions against the same sheet are a lost-update hazard the
// engine cannot merge, so Update is the only mutation path callers get.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gofrs/flock"

	"rework/internal/fs"
)

// Sentinel errors.
var (
	// ErrSheetNotFound reports an id with no sheet file.
	ErrSheetNotFound = errors.New("unit sheet not found")

	// ErrWriteFailed reports a rejected sheet write. The previous content
	// is intact: writes go through a temp file and rename.
	ErrWriteFailed = errors.New("sheet write failed")

	// ErrLockTimeout reports that the per-sheet lock could not be acquired
	// in time.
	ErrLockTimeout = errors.New("sheet lock timeout")

	errInvalidID = errors.New("invalid unit id")
)

const (
	// SheetExt is the file extension of a unit sheet.
	SheetExt = ".md"

	// locksDirName keeps lock files out of the sheet directory so listing
	// never sees them.
	locksDirName = ".locks"

	// DefaultLockTimeout bounds how long Update waits for a sheet lock.
	DefaultLockTimeout = 2 * time.Second

	lockRetryDelay = 25 * time.Millisecond

	dirPerms  = 0o750
	filePerms = 0o600
)

// Store is a directory of unit sheets.
type Store struct {
	fs          fs.FS
	dir         string
	lockTimeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithFS injects a filesystem (tests use fs.Injected).
func WithFS(f fs.FS) Option {
	return func(s *Store) {
		s.fs = f
	}
}

// WithLockTimeout overrides DefaultLockTimeout.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.lockTimeout = d
	}
}

// Open prepares a store rooted at dir, creating the directory if needed.
func Open(dir string, opts ...Option) (*Store, error) {
	s := &Store{
		fs:          fs.NewReal(),
		dir:         dir,
		lockTimeout: DefaultLockTimeout,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	err := s.fs.MkdirAll(dir, dirPerms)
	if err != nil {
		return nil, fmt.Errorf("creating sheet directory: %w", err)
	}

	return s, nil
}

// Dir returns the sheet directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the sheet file path for id.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id+SheetExt)
}

// Exists reports whether a sheet exists for id.
func (s *Store) Exists(id string) bool {
	if validID(id) != nil {
		return false
	}

	ok, err := s.fs.Exists(s.Path(id))

	return err == nil && ok
}

// Read returns the full sheet text for id.
func (s *Store) Read(id string) (string, error) {
	err := validID(id)
	if err != nil {
		return "", err
	}

	data, err := s.fs.ReadFile(s.Path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrSheetNotFound, id)
		}

		return "", fmt.Errorf("reading sheet %s: %w", id, err)
	}

	return string(data), nil
}

// Write stores the full sheet text for id atomically.
func (s *Store) Write(id, text string) error {
	err := validID(id)
	if err != nil {
		return err
	}

	err = s.fs.WriteFileAtomic(s.Path(id), []byte(text), filePerms)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, id, err)
	}

	return nil
}

// Update runs transform over the current sheet text and writes the result,
// all under an exclusive per-sheet lock. A transform error means no write;
// an unchanged result skips the write. This is the critical section every
// action invocation must pass through.
func (s *Store) Update(id string, transform func(text string) (string, error)) error {
	err := validID(id)
	if err != nil {
		return err
	}

	unlock, err := s.lock(id)
	if err != nil {
		return err
	}
	defer unlock()

	text, err := s.Read(id)
	if err != nil {
		return err
	}

	updated, err := transform(text)
	if err != nil {
		return err
	}

	if updated == text {
		return nil
	}

	return s.Write(id, updated)
}

// List returns the ids of all sheets matching a doublestar pattern, sorted.
// An empty pattern matches everything.
func (s *Store) List(pattern string) ([]string, error) {
	entries, err := s.fs.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing sheets: %w", err)
	}

	var ids []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SheetExt) {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), SheetExt)

		if pattern != "" {
			ok, matchErr := doublestar.Match(pattern, id)
			if matchErr != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", pattern, matchErr)
			}

			if !ok {
				continue
			}
		}

		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids, nil
}

// lock acquires the exclusive flock for a sheet. Lock files live in a
// .locks subdirectory and are left in place after release; replacing them
// would break flock semantics for waiters.
func (s *Store) lock(id string) (func(), error) {
	locksDir := filepath.Join(s.dir, locksDirName)

	err := s.fs.MkdirAll(locksDir, dirPerms)
	if err != nil {
		return nil, fmt.Errorf("creating locks dir: %w", err)
	}

	lock := flock.New(filepath.Join(locksDir, id+SheetExt+".lock"))

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("locking sheet %s: %w", id, err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, id)
	}

	return func() { _ = lock.Unlock() }, nil
}

// validID rejects ids that would escape the sheet directory.
func validID(id string) error {
	if id == "" || strings.ContainsAny(id, "/\\") || id == "." || id == ".." {
		return fmt.Errorf("%w: %q", errInvalidID, id)
	}

	return nil
}
