package main

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abilink/internal/diag"
)

const workConfig = `
[link]
inputs = ["obj/a.sdump"]
output = "out/from-file.lsdump"
max_entities = 50

[visibility]
export_dirs = ["/src/include"]
so = "/out/libq.so"
api = "29"

[log]
level = "info"
`

func loadWith(t *testing.T, h *harness, args ...string) (*options, error) {
	t.Helper()
	c := h.command()
	require.NoError(t, c.cmd.ParseFlags(rewriteLegacyArgs(args)))
	return c.loadOptions(c.cmd, c.cmd.Flags().Args())
}

func TestConfigPrecedence(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.fs, "/work/abilink.toml", []byte(workConfig), 0o644))

	opts, err := loadWith(t, h)
	require.NoError(t, err)
	assert.Equal(t, []string{"/work/obj/a.sdump"}, opts.Inputs, "relative to the config file")
	assert.Equal(t, "/work/out/from-file.lsdump", opts.Output)
	assert.Equal(t, 50, opts.MaxEntities)
	assert.Equal(t, "29", opts.API)
	assert.Equal(t, "info", opts.LogLevel)
	assert.Equal(t, "auto", opts.InputFormat, "defaults survive")

	h.env["ABILINK_OUTPUT"] = "/out/from-env.lsdump"
	h.env["ABILINK_EXPORT_DIRS"] = "/a,/b"
	h.env["ABILINK_MAX_ENTITIES"] = "7"
	opts, err = loadWith(t, h)
	require.NoError(t, err)
	assert.Equal(t, "/out/from-env.lsdump", opts.Output)
	assert.Equal(t, []string{"/a", "/b"}, opts.ExportDirs)
	assert.Equal(t, 7, opts.MaxEntities)

	opts, err = loadWith(t, h, "-o", "/out/from-flag.lsdump", "-I/c", "-api", "current", "/obj/a.sdump")
	require.NoError(t, err)
	assert.Equal(t, "/out/from-flag.lsdump", opts.Output)
	assert.Equal(t, []string{"/c"}, opts.ExportDirs)
	assert.Equal(t, "current", opts.API)
	assert.Equal(t, []string{"/obj/a.sdump"}, opts.Inputs)
	assert.Equal(t, 7, opts.MaxEntities, "unset flags do not override")
}

func TestConfigExplicitPath(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.fs, "/etc/abilink/link.toml", []byte(workConfig), 0o644))

	opts, err := loadWith(t, h, "--config", "/etc/abilink/link.toml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/abilink/out/from-file.lsdump", opts.Output)

	h.env["ABILINK_CONFIG"] = "/etc/abilink/missing.toml"
	_, err = loadWith(t, h)
	require.Error(t, err)
	code, ok := diag.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, diag.ConfigurationError, code)
}

func TestConfigRejectsUnknownKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/abilink.toml", []byte("[link]\noutptu = \"x\"\n"), 0o644))
	_, err := loadConfigFile(fs, "/p/abilink.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "link.outptu")
}

func TestFindConfigFileWalksUp(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/abilink.toml", nil, 0o644))
	require.NoError(t, fs.MkdirAll("/repo/lib/sub", 0o755))

	path, ok, err := findConfigFile(fs, "/repo/lib/sub")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/repo/abilink.toml", path)

	_, ok, err = findConfigFile(fs, "/elsewhere")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnvBadValue(t *testing.T) {
	_, err := readEnv(func(key string) (string, bool) {
		if key == "ABILINK_MAX_ENTITIES" {
			return "many", true
		}
		return "", false
	})
	require.Error(t, err)
	code, _ := diag.CodeOf(err)
	assert.Equal(t, diag.ConfigurationError, code)
}

func TestReadColorMode(t *testing.T) {
	for in, want := range map[string]colorMode{"": colorModeAuto, "ON": colorModeOn, "never": colorModeOff} {
		got, err := readColorMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := readColorMode("rainbow")
	require.Error(t, err)
}

func TestConfigUIMode(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.fs, "/work/abilink.toml", []byte("[link]\nui = \"on\"\n"), 0o644))

	opts, err := loadWith(t, h, "/obj/a.sdump", "-o", "/out/x", "-so", "/out/libq.so")
	require.NoError(t, err)
	assert.Equal(t, "on", opts.UI)

	h.env["ABILINK_UI"] = "off"
	opts, err = loadWith(t, h, "/obj/a.sdump", "-o", "/out/x", "-so", "/out/libq.so")
	require.NoError(t, err)
	assert.Equal(t, "off", opts.UI)

	_, err = loadWith(t, h, "/obj/a.sdump", "-o", "/out/x", "-so", "/out/libq.so", "--ui", "sometimes")
	require.Error(t, err)
}
