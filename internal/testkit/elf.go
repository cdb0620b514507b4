package testkit

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"

	"fortio.org/safecast"
	"github.com/stretchr/testify/require"
)

// Sym describes one .dynsym entry of a synthetic shared object.
type Sym struct {
	Name  string
	Bind  elf.SymBind
	Type  elf.SymType
	Vis   elf.SymVis
	Shndx elf.SectionIndex
}

// Func is a defined global function symbol.
func Func(name string) Sym {
	return Sym{Name: name, Bind: elf.STB_GLOBAL, Type: elf.STT_FUNC, Shndx: 5}
}

// Object is a defined global data symbol.
func Object(name string) Sym {
	return Sym{Name: name, Bind: elf.STB_GLOBAL, Type: elf.STT_OBJECT, Shndx: 6}
}

// BuildSharedObject assembles a minimal little-endian ELF64 image whose only
// meaningful content is a .dynsym/.dynstr pair.
func BuildSharedObject(t testing.TB, syms []Sym) []byte {
	t.Helper()

	shstr := []byte("\x00.shstrtab\x00.dynstr\x00.dynsym\x00")
	const (
		nameShstrtab = 1
		nameDynstr   = 11
		nameDynsym   = 19
	)

	dynstr := []byte{0}
	var dynsym bytes.Buffer
	require.NoError(t, binary.Write(&dynsym, binary.LittleEndian, elf.Sym64{}))
	for _, s := range syms {
		off, err := safecast.Conv[uint32](len(dynstr))
		require.NoError(t, err)
		dynstr = append(append(dynstr, s.Name...), 0)
		require.NoError(t, binary.Write(&dynsym, binary.LittleEndian, elf.Sym64{
			Name:  off,
			Info:  elf.ST_INFO(s.Bind, s.Type),
			Other: uint8(s.Vis),
			Shndx: uint16(s.Shndx),
			Value: 0x1000,
		}))
	}

	const ehdrSize = 64
	shstrOff := uint64(ehdrSize)
	dynstrOff := shstrOff + uint64(len(shstr))
	dynsymOff := (dynstrOff + uint64(len(dynstr)) + 7) &^ 7
	shOff := (dynsymOff + uint64(dynsym.Len()) + 7) &^ 7

	var buf bytes.Buffer
	var ident [elf.EI_NIDENT]byte
	copy(ident[:], elf.ELFMAG)
	ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, elf.Header64{
		Ident:     ident,
		Type:      uint16(elf.ET_DYN),
		Machine:   uint16(elf.EM_X86_64),
		Version:   uint32(elf.EV_CURRENT),
		Shoff:     shOff,
		Ehsize:    ehdrSize,
		Shentsize: 64,
		Shnum:     4,
		Shstrndx:  1,
	}))
	buf.Write(shstr)
	buf.Write(dynstr)
	buf.Write(make([]byte, int(dynsymOff)-buf.Len()))
	buf.Write(dynsym.Bytes())
	buf.Write(make([]byte, int(shOff)-buf.Len()))

	sections := []elf.Section64{
		{},
		{Name: nameShstrtab, Type: uint32(elf.SHT_STRTAB), Off: shstrOff, Size: uint64(len(shstr)), Addralign: 1},
		{Name: nameDynstr, Type: uint32(elf.SHT_STRTAB), Off: dynstrOff, Size: uint64(len(dynstr)), Addralign: 1},
		{Name: nameDynsym, Type: uint32(elf.SHT_DYNSYM), Off: dynsymOff, Size: uint64(dynsym.Len()),
			Link: 2, Info: 1, Addralign: 8, Entsize: elf.Sym64Size},
	}
	for _, sh := range sections {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, sh))
	}
	return buf.Bytes()
}
