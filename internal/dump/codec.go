// Package dump reads and writes ABI descriptors.
package dump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"abilink/internal/abi"
)

// Decode parses exactly one descriptor from r. An empty stream yields an
// empty unit; anything after the descriptor is an error.
func Decode(r io.Reader, f Format) (*abi.TranslationUnit, error) {
	tu := &abi.TranslationUnit{}
	var err, rest error
	switch f {
	case FormatJSON, FormatAuto, "":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err = dec.Decode(tu); err == nil {
			var extra json.RawMessage
			rest = dec.Decode(&extra)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err = dec.Decode(tu); err == nil {
			var extra yaml.Node
			rest = dec.Decode(&extra)
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		dec.DisallowUnknownFields(true)
		if err = dec.Decode(tu); err == nil {
			_, rest = dec.PeekCode()
		}
	default:
		return nil, fmt.Errorf("unsupported descriptor format %q", f)
	}
	if errors.Is(err, io.EOF) {
		return &abi.TranslationUnit{}, nil
	}
	if err != nil {
		return nil, err
	}
	if err := trailing(rest); err != nil {
		return nil, err
	}
	return tu, nil
}

// trailing turns the result of reading past the first descriptor into an
// error unless the stream was exhausted.
func trailing(rest error) error {
	switch {
	case errors.Is(rest, io.EOF):
		return nil
	case rest == nil:
		return errors.New("unexpected data after descriptor")
	default:
		return fmt.Errorf("unexpected data after descriptor: %w", rest)
	}
}

// Encode writes tu to w. Output is deterministic for a given unit.
func Encode(w io.Writer, tu *abi.TranslationUnit, f Format) error {
	if tu == nil {
		tu = &abi.TranslationUnit{}
	}
	switch f {
	case FormatJSON, FormatAuto, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(tu)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tu); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(tu)
	}
	return fmt.Errorf("unsupported descriptor format %q", f)
}
