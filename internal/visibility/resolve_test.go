package visibility

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abilink/internal/diag"
	"abilink/internal/testkit"
)

const libMap = `
LIBM {
  global:
    m_open;
    m_close; # introduced=30
    m_errno; # var
    m_cb_*;
  local:
    *;
};
`

func newFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/include/m.h", []byte("int m_open(void);\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/include/sub/m_impl.h", nil, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/libm.map.txt", []byte(libMap), 0o644))
	so := testkit.BuildSharedObject(t, []testkit.Sym{testkit.Func("m_open"), testkit.Object("m_errno")})
	require.NoError(t, afero.WriteFile(fs, "/out/libm.so", so, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/out/notes.txt", []byte("plain text"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/out/broken.map.txt", []byte("LIBM {\n  global:\n    m_open;\n"), 0o644))
	return fs
}

func TestResolveSharedObject(t *testing.T) {
	p, err := Resolve(context.Background(), newFs(t), Config{
		ExportDirs:   []string{"/src/include"},
		SharedObject: "/out/libm.so",
	})
	require.NoError(t, err)
	assert.Equal(t, ModeSharedObject, p.Mode)
	assert.True(t, p.SymbolMode())
	assert.Equal(t, []string{"/src/include/m.h", "/src/include/sub/m_impl.h"}, p.ExportedHeaders.Sorted())
	assert.Equal(t, []string{"m_open"}, p.Functions.Sorted())
	assert.Equal(t, []string{"m_errno"}, p.GlobalVars.Sorted())
	assert.Zero(t, p.FunctionPatterns.Len())
}

func TestResolveVersionScriptIgnoresSharedObject(t *testing.T) {
	p, err := Resolve(context.Background(), newFs(t), Config{
		SharedObject:     "/out/notes.txt",
		VersionScript:    "/src/libm.map.txt",
		UseVersionScript: true,
		API:              "29",
	})
	require.NoError(t, err)
	assert.Equal(t, ModeVersionScript, p.Mode)
	assert.Empty(t, p.ExportedHeaders, "no export dirs, no header filter")
	assert.Equal(t, []string{"m_open"}, p.Functions.Sorted())
	assert.Equal(t, []string{"m_errno"}, p.GlobalVars.Sorted())
	assert.Equal(t, []string{"m_cb_*"}, p.FunctionPatterns.Sorted())
}

func TestResolveWithoutSymbolSource(t *testing.T) {
	p, err := Resolve(context.Background(), newFs(t), Config{ExportDirs: []string{"/src/include/sub"}})
	require.NoError(t, err)
	assert.Equal(t, ModeNone, p.Mode)
	assert.False(t, p.SymbolMode())
	assert.True(t, p.ExportedHeaders.Contains("/src/include/sub/m_impl.h"))
}

func TestResolveErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		code diag.Code
	}{
		{
			name: "version script flag without script",
			cfg:  Config{UseVersionScript: true, SharedObject: "/out/libm.so"},
			code: diag.ConfigurationError,
		},
		{
			name: "script without flag or object",
			cfg:  Config{VersionScript: "/src/libm.map.txt"},
			code: diag.ConfigurationError,
		},
		{
			name: "missing export dir",
			cfg:  Config{ExportDirs: []string{"/nope"}, SharedObject: "/out/libm.so"},
			code: diag.ResolutionError,
		},
		{
			name: "not an object file",
			cfg:  Config{SharedObject: "/out/notes.txt"},
			code: diag.ResolutionError,
		},
		{
			name: "missing object file",
			cfg:  Config{SharedObject: "/out/libgone.so"},
			code: diag.ResolutionError,
		},
		{
			name: "bad api level",
			cfg:  Config{VersionScript: "/src/libm.map.txt", UseVersionScript: true, API: "Q-ish"},
			code: diag.ConfigurationError,
		},
		{
			name: "missing version script",
			cfg:  Config{VersionScript: "/src/gone.map.txt", UseVersionScript: true},
			code: diag.ResolutionError,
		},
		{
			name: "malformed version script",
			cfg:  Config{VersionScript: "/out/broken.map.txt", UseVersionScript: true},
			code: diag.InputParseError,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(context.Background(), newFs(t), tc.cfg)
			require.Error(t, err)
			code, ok := diag.CodeOf(err)
			require.True(t, ok)
			assert.Equal(t, tc.code, code)
		})
	}
}
