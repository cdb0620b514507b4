package headers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("// header\n"), 0o644))
	}
	return fs
}

func TestCollectExportedRecursive(t *testing.T) {
	fs := newTree(t,
		"/src/include/a.h",
		"/src/include/sub/b.h",
		"/src/include/sub/deeper/c.hpp",
		"/src/private/d.h",
	)
	set, err := CollectExported(context.Background(), fs, []string{"/src/include"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/src/include/a.h",
		"/src/include/sub/b.h",
		"/src/include/sub/deeper/c.hpp",
	}, set.Sorted())
	assert.False(t, set.Contains("/src/private/d.h"))
}

func TestCollectExportedMultipleDirs(t *testing.T) {
	fs := newTree(t, "/a/x.h", "/b/y.h", "/c/z.h")
	set, err := CollectExported(context.Background(), fs, []string{"/a", "/b/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/x.h", "/b/y.h"}, set.Sorted())
}

func TestCollectExportedNoDirs(t *testing.T) {
	set, err := CollectExported(context.Background(), afero.NewMemMapFs(), nil)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestCollectExportedMissingDir(t *testing.T) {
	_, err := CollectExported(context.Background(), afero.NewMemMapFs(), []string{"/nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nope")
}

func TestCollectExportedRejectsFile(t *testing.T) {
	fs := newTree(t, "/inc/a.h")
	_, err := CollectExported(context.Background(), fs, []string{"/inc/a.h"})
	require.Error(t, err)
}

func TestContainsNormalizes(t *testing.T) {
	set := Set{"/inc/a.h": {}}
	assert.True(t, set.Contains("/inc/./a.h"))
	assert.True(t, set.Contains("/inc/sub/../a.h"))
	assert.False(t, set.Contains("/inc/b.h"))
}

func TestNormalizeComposesUnicode(t *testing.T) {
	fs := afero.NewMemMapFs()
	decomposed := "/inc/cafe\u0301.h"
	require.NoError(t, afero.WriteFile(fs, decomposed, nil, 0o644))

	set, err := CollectExported(context.Background(), fs, []string{"/inc"})
	require.NoError(t, err)
	assert.True(t, set.Contains("/inc/caf\u00e9.h"))
	assert.True(t, set.Contains(decomposed))
}

func TestCollectExportedFollowsSymlinks(t *testing.T) {
	tmp := t.TempDir()
	write := func(rel string) {
		p := filepath.Join(tmp, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("// header\n"), 0o644))
	}
	write("include/bar.h")
	write("real/foo.h")
	write("real/sub/baz.h")
	include := filepath.Join(tmp, "include")
	require.NoError(t, os.Symlink("../real/foo.h", filepath.Join(include, "foo.h")))
	require.NoError(t, os.Symlink("../real/sub", filepath.Join(include, "sub")))
	require.NoError(t, os.Symlink("missing.h", filepath.Join(include, "dangling.h")))
	require.NoError(t, os.Symlink(".", filepath.Join(include, "self")))

	set, err := CollectExported(context.Background(), afero.NewOsFs(), []string{include})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(include, "bar.h"),
		filepath.Join(include, "foo.h"),
		filepath.Join(include, "sub", "baz.h"),
	}, set.Sorted())
	assert.False(t, set.Contains(filepath.Join(tmp, "real", "foo.h")))
}

func TestCollectExportedStopsOnCancel(t *testing.T) {
	fs := newTree(t, "/inc/a.h")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CollectExported(ctx, fs, []string{"/inc"})
	require.ErrorIs(t, err, context.Canceled)
}
