package bundle

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/vk/taglib/internal/ctxlog"
	"github.com/vk/taglib/internal/fsutil"
)

// IgnoreFile is read from the discovery root. Paths it matches, relative to
// the root and in gitignore syntax, are not treated as bundles.
const IgnoreFile = ".bundleignore"

// dataDir marks an unpacked bundle directory.
const dataDir = "data"

// Discover returns the bundles found at root, in lexical path order.
//
// If root is an archive, it is the only bundle. If root is a directory, every
// archive below it and every directory containing a `data` directory is a
// bundle; the root itself counts when it contains `data`. Entries that cannot
// be read while walking are skipped.
func Discover(ctx context.Context, root string) ([]Bundle, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("bundle path: %w", err)
	}

	if !info.IsDir() {
		if !isArchive(root) {
			return nil, fmt.Errorf("%s: not a directory or a .jar/.zip archive", root)
		}
		logger.Debug("Bundle path is a single archive.", "path", root)
		return []Bundle{Zip(root)}, nil
	}

	if fsutil.IsDir(filepath.Join(root, dataDir)) {
		logger.Debug("Bundle path is a single unpacked bundle.", "path", root)
		return []Bundle{Dir(root)}, nil
	}

	gi := loadIgnore(root)

	var bundles []Bundle
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable locations contribute nothing
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			logger.Debug("Ignoring path listed in ignore file.", "path", rel)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if fsutil.IsDir(filepath.Join(path, dataDir)) {
				bundles = append(bundles, Dir(path))
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if isArchive(d.Name()) {
			bundles = append(bundles, Zip(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Bundle discovery complete.", "root", root, "count", len(bundles))
	return bundles, nil
}

func loadIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, IgnoreFile))
	if err != nil {
		return nil
	}
	return gi
}
