// Package headers collects the set of header paths that form a library's
// public API surface.
package headers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

// Set is a set of normalized header paths. The empty set disables filtering.
type Set map[string]struct{}

// Contains reports whether path, after normalization, is in the set.
func (s Set) Contains(path string) bool {
	_, ok := s[Normalize(path)]
	return ok
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Normalize cleans path the same way for collected headers and for the
// source_file of linked entities. Paths are compared in NFC form since some
// filesystems hand back decomposed names.
func Normalize(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(norm.NFC.String(path))
}

// CollectExported walks every directory in dirs and returns all regular files
// reachable below them, through symlinks included. Directories are walked concurrently; each walk fills its
// own slot so the merge does not need locking.
func CollectExported(ctx context.Context, fs afero.Fs, dirs []string) (Set, error) {
	set := make(Set)
	if len(dirs) == 0 {
		return set, nil
	}

	found := make([][]string, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(len(dirs), 8))
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			paths, err := walkDir(gctx, fs, dir)
			if err != nil {
				return err
			}
			found[i] = paths
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, paths := range found {
		for _, p := range paths {
			set[p] = struct{}{}
		}
	}
	return set, nil
}

// maxLinkDepth bounds how many symlinked directories one walk may pass
// through, for filesystems where loops cannot be detected by identity.
const maxLinkDepth = 40

func walkDir(ctx context.Context, fs afero.Fs, dir string) ([]string, error) {
	root := Normalize(dir)
	info, err := fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("export directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("export directory %q is not a directory", dir)
	}

	w := &walker{ctx: ctx, fs: fs}
	if err := w.walk(root, []os.FileInfo{info}, 0); err != nil {
		return nil, fmt.Errorf("walk %q: %w", dir, err)
	}
	return w.paths, nil
}

// walker collects regular files below a directory. Symlinks are followed:
// a link to a file is recorded under the link's own path, a link to a
// directory is descended unless that directory is already on the current
// path.
type walker struct {
	ctx   context.Context
	fs    afero.Fs
	paths []string
}

func (w *walker) walk(dir string, ancestors []os.FileInfo, links int) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return err
	}
	for _, info := range entries {
		path := filepath.Join(dir, info.Name())
		depth := links
		if info.Mode()&os.ModeSymlink != 0 {
			target, err := w.fs.Stat(path)
			if err != nil {
				// dangling link
				continue
			}
			info = target
			depth++
		}
		switch {
		case info.IsDir():
			if depth > maxLinkDepth || onPath(ancestors, info) {
				continue
			}
			if err := w.walk(path, append(ancestors[:len(ancestors):len(ancestors)], info), depth); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			w.paths = append(w.paths, Normalize(path))
		}
	}
	return nil
}

func onPath(ancestors []os.FileInfo, dir os.FileInfo) bool {
	for _, a := range ancestors {
		if os.SameFile(a, dir) {
			return true
		}
	}
	return false
}
