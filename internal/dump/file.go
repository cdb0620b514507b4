package dump

import (
	"bufio"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"abilink/internal/abi"
)

// ReadFile decodes the descriptor stored at path.
func ReadFile(fs afero.Fs, path string, f Format) (*abi.TranslationUnit, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	tu, err := Decode(bufio.NewReader(file), f.Resolve(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tu, nil
}

// WriteFile encodes tu into a temp file next to path and renames it into
// place, so a failed write never leaves a truncated descriptor behind.
func WriteFile(fs afero.Fs, path string, tu *abi.TranslationUnit, f Format) (err error) {
	dir := filepath.Dir(path)
	if err = fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := afero.TempFile(fs, dir, ".abilink-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = fs.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = Encode(w, tu, f.Resolve(path)); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = w.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return fs.Rename(tmpName, path)
}
