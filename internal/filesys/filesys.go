// Package filesys provides file system abstractions for nslook.
// It defines the small interfaces the config loader and resolver discovery
// need and an implementation that delegates to the standard library,
// making code that touches the file system easy to test.
package filesys

import (
	"io/fs"
	"os"
)

// ReadWriteFS is the tiny surface the *config loader* needs.
// It is intentionally **smaller** than os.File because callers
// never need random-access writes or directory iteration.
type ReadWriteFS interface {
	Stat(string) (fs.FileInfo, error)
	MkdirAll(string, os.FileMode) error
	Open(string) (*os.File, error)
	WriteFile(string, []byte, os.FileMode) error
}

// ReadFS is what *resolver discovery* needs to read resolv.conf.
type ReadFS interface {
	ReadFile(string) ([]byte, error)
}

// OS returns a file system implementation that delegates to the standard library.
// The returned implementation satisfies both ReadWriteFS and ReadFS.
func OS() OsFS {
	return OsFS{}
}

// OsFS implements both ReadWriteFS and ReadFS against the local disk.
// All methods delegate to the standard library.
type OsFS struct{}

func (OsFS) Stat(p string) (fs.FileInfo, error)                { return os.Stat(p) }
func (OsFS) MkdirAll(p string, m os.FileMode) error            { return os.MkdirAll(p, m) }
func (OsFS) Open(p string) (*os.File, error)                   { return os.Open(p) }
func (OsFS) ReadFile(p string) ([]byte, error)                 { return os.ReadFile(p) }
func (OsFS) WriteFile(p string, b []byte, m os.FileMode) error { return os.WriteFile(p, b, m) }

var (
	_ ReadWriteFS = OsFS{}
	_ ReadFS      = OsFS{}
)
