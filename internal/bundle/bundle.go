package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ErrStopWalk can be returned by a WalkFunc to end a walk early without error.
var ErrStopWalk = errors.New("stop walk")

// Entry is one item in a bundle listing.
type Entry struct {
	Path  string // Slash-separated, relative to the bundle root
	IsDir bool
	Open  func() (io.ReadCloser, error)
}

// WalkFunc is called for every entry of a bundle, in listing order.
type WalkFunc func(e Entry) error

// Bundle is a source of tag definition files.
type Bundle interface {
	// Name identifies the bundle in diagnostics.
	Name() string
	// Walk visits every entry of the bundle in listing order. An error from
	// fn other than ErrStopWalk aborts the walk and is returned.
	Walk(fn WalkFunc) error
}

// zipBundle reads a .jar or .zip archive. The archive is opened on every Walk
// and closed when the walk ends.
type zipBundle struct {
	path string
}

// Zip returns a Bundle backed by the archive at path.
func Zip(path string) Bundle {
	return &zipBundle{path: path}
}

func (b *zipBundle) Name() string { return b.path }

func (b *zipBundle) Walk(fn WalkFunc) error {
	r, err := zip.OpenReader(b.path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", b.path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		e := Entry{
			Path:  f.Name,
			IsDir: f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/"),
			Open:  f.Open,
		}
		if err := fn(e); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
	}
	return nil
}

// dirBundle reads an unpacked bundle directory.
type dirBundle struct {
	root string
}

// Dir returns a Bundle backed by the directory at root.
func Dir(root string) Bundle {
	return &dirBundle{root: root}
}

func (b *dirBundle) Name() string { return b.root }

func (b *dirBundle) Walk(fn WalkFunc) error {
	fsys := os.DirFS(b.root)
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == "." {
			return nil
		}
		return fn(Entry{
			Path:  path,
			IsDir: d.IsDir(),
			Open: func() (io.ReadCloser, error) {
				return fsys.Open(path)
			},
		})
	})
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("walking bundle directory %s: %w", b.root, err)
	}
	return nil
}

// memoryBundle holds its files in memory. Hosts use it to contribute tag
// files that do not live on disk.
type memoryBundle struct {
	name  string
	files map[string][]byte
}

// Memory returns a Bundle serving the given files. Entries are listed in
// lexical path order.
func Memory(name string, files map[string][]byte) Bundle {
	return &memoryBundle{name: name, files: files}
}

func (b *memoryBundle) Name() string { return b.name }

func (b *memoryBundle) Walk(fn WalkFunc) error {
	paths := make([]string, 0, len(b.files))
	for p := range b.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		data := b.files[p]
		e := Entry{
			Path:  p,
			IsDir: strings.HasSuffix(p, "/"),
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(data)), nil
			},
		}
		if err := fn(e); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
	}
	return nil
}

// isArchive reports whether path names a supported archive file.
func isArchive(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jar", ".zip":
		return true
	}
	return false
}
