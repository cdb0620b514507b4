package versionscript

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libfooMap = `
LIBFOO {
  global:
    foo_init;
    foo_run; # arm64 x86_64
    foo_arm_only; # arm
    foo_new; # introduced=30
    foo_old; # introduced=21
    foo_split; # introduced=30 introduced-arm64=24
    foo_errno; # var
    foo_cb_*;
    foo_tbl_*; # var
    foo_next; # future
  local:
    *;
};

LIBFOO_PRIVATE { # introduced=29
  global:
    foo_private_hook;
    extern "C++" {
      "foo::Bar::*";
    };
} LIBFOO;
`

func TestParseSelectsByArchAndAPI(t *testing.T) {
	s, err := Parse(strings.NewReader(libfooMap), "arm64", "28")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo_init", "foo_old", "foo_run", "foo_split"}, s.Functions.Sorted())
	assert.Equal(t, []string{"foo_errno"}, s.GlobalVars.Sorted())
	assert.Equal(t, []string{"foo_cb_*"}, s.FunctionPatterns.Sorted())
	assert.Equal(t, []string{"foo_tbl_*"}, s.GlobalVarPatterns.Sorted())
}

func TestParseCurrentIncludesEverythingForArch(t *testing.T) {
	s, err := Parse(strings.NewReader(libfooMap), "arm", "current")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"foo_arm_only", "foo_init", "foo_new", "foo_next", "foo_old", "foo_private_hook", "foo_split",
	}, s.Functions.Sorted())
	assert.Equal(t, []string{"foo::Bar::*", "foo_cb_*"}, s.FunctionPatterns.Sorted())
}

func TestParseWithoutArchSkipsArchFiltering(t *testing.T) {
	s, err := Parse(strings.NewReader(libfooMap), "", "")
	require.NoError(t, err)
	assert.True(t, s.Functions.Has("foo_run"))
	assert.True(t, s.Functions.Has("foo_arm_only"))
}

func TestParseLocalEntriesIgnored(t *testing.T) {
	src := "V1 {\n  global: a; b;\n  local: c;\n};\n"
	s, err := Parse(strings.NewReader(src), "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, s.Functions.Sorted())
	assert.Zero(t, s.FunctionPatterns.Len())
}

func TestParseSingleLineBlock(t *testing.T) {
	s, err := Parse(strings.NewReader("V1 { global: x; local: *; };"), "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, s.Functions.Sorted())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		api  string
	}{
		{name: "unbalanced close", src: "};\n"},
		{name: "unterminated", src: "V1 {\n global: a;\n"},
		{name: "outside block", src: "a;\n"},
		{name: "bad introduced", src: "V1 {\n a; # introduced=banana\n};\n"},
		{name: "bad api", src: "V1 { a; };", api: "-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src), "arm64", tt.api)
			require.Error(t, err)
		})
	}
}

func TestParseAPILevel(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", FutureAPILevel},
		{"current", FutureAPILevel},
		{"future", FutureAPILevel},
		{"21", 21},
		{"P", 28},
		{"Tiramisu", 33},
	}
	for _, tt := range tests {
		got, err := ParseAPILevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseAPILevel("-1")
	require.Error(t, err)
}

func TestParseFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/libfoo.map.txt", []byte(libfooMap), 0o644))
	s, err := ParseFile(fs, "/src/libfoo.map.txt", "x86_64", "current")
	require.NoError(t, err)
	assert.True(t, s.Functions.Has("foo_run"))
	assert.False(t, s.Functions.Has("foo_arm_only"))

	_, err = ParseFile(fs, "/src/missing.map.txt", "x86_64", "current")
	require.Error(t, err)
}
