package sofile

import (
	"bytes"
	"debug/elf"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abilink/internal/testkit"
)

func TestExtractSplitsFunctionsAndObjects(t *testing.T) {
	image := testkit.BuildSharedObject(t, []testkit.Sym{
		{Name: "foo", Bind: elf.STB_GLOBAL, Type: elf.STT_FUNC, Shndx: 5},
		{Name: "weak_fn", Bind: elf.STB_WEAK, Type: elf.STT_FUNC, Shndx: 5},
		{Name: "counter", Bind: elf.STB_GLOBAL, Type: elf.STT_OBJECT, Shndx: 6},
		{Name: "tls_state", Bind: elf.STB_GLOBAL, Type: elf.STT_TLS, Shndx: 7},
		{Name: "malloc", Bind: elf.STB_GLOBAL, Type: elf.STT_FUNC, Shndx: elf.SHN_UNDEF},
		{Name: "helper", Bind: elf.STB_LOCAL, Type: elf.STT_FUNC, Shndx: 5},
		{Name: "hidden_fn", Bind: elf.STB_GLOBAL, Type: elf.STT_FUNC, Vis: elf.STV_HIDDEN, Shndx: 5},
		{Name: "protected_fn", Bind: elf.STB_GLOBAL, Type: elf.STT_FUNC, Vis: elf.STV_PROTECTED, Shndx: 5},
	})

	syms, err := Extract(bytes.NewReader(image))
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "protected_fn", "weak_fn"}, syms.Functions.Sorted())
	assert.Equal(t, []string{"counter", "tls_state"}, syms.GlobalVars.Sorted())
}

func TestExtractRejectsNonELF(t *testing.T) {
	_, err := Extract(bytes.NewReader([]byte("#!/bin/sh\necho not an object\n")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an object file")
}

func TestClassifyIFuncAndCommon(t *testing.T) {
	syms := Classify([]elf.Symbol{
		{Name: "resolver", Info: elf.ST_INFO(elf.STB_GLOBAL, sttGNUIFunc), Section: 5},
		{Name: "common_buf", Info: elf.ST_INFO(elf.STB_GLOBAL, elf.STT_COMMON), Section: elf.SHN_COMMON},
		{Name: "unique", Info: elf.ST_INFO(stbGNUUnique, elf.STT_OBJECT), Section: 6},
		{Name: "section_sym", Info: elf.ST_INFO(elf.STB_GLOBAL, elf.STT_SECTION), Section: 6},
		{Name: "", Info: elf.ST_INFO(elf.STB_GLOBAL, elf.STT_FUNC), Section: 5},
	})
	assert.Equal(t, []string{"resolver"}, syms.Functions.Sorted())
	assert.Equal(t, []string{"common_buf", "unique"}, syms.GlobalVars.Sorted())
}

func TestExtractFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	image := testkit.BuildSharedObject(t, []testkit.Sym{{Name: "foo", Bind: elf.STB_GLOBAL, Type: elf.STT_FUNC, Shndx: 5}})
	require.NoError(t, afero.WriteFile(fs, "/out/libfoo.so", image, 0o644))

	syms, err := ExtractFile(fs, "/out/libfoo.so")
	require.NoError(t, err)
	assert.True(t, syms.Functions.Has("foo"))

	_, err = ExtractFile(fs, "/out/missing.so")
	require.Error(t, err)
}
