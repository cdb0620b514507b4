package fuzztests

import (
	"bytes"
	"context"
	"testing"
	"time"

	"abilink/internal/versionscript"
)

// parseTimeout bounds one parse; exceeding it means the parser loops.
const parseTimeout = 5 * time.Second

func FuzzVersionScriptParse(f *testing.F) {
	addTestdataSeeds(f, ".map.txt", ".map")
	f.Add([]byte("LIB { global: foo; local: *; };"))
	f.Add([]byte("LIB {\n  global:\n    foo; # arm64 introduced=30\n    bar_*; # var\n};\n"))
	f.Add([]byte("A { extern \"C++\" { \"ns::*\"; }; } B;"))
	f.Add([]byte("}"))
	f.Add([]byte("LIB { foo; # introduced-arm=oops\n};"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		first, err1 := versionscript.Parse(bytes.NewReader(input), "arm64", "30")
		second, err2 := versionscript.Parse(bytes.NewReader(input), "arm64", "30")
		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("parse is not deterministic: %v vs %v", err1, err2)
		}
		if err1 != nil {
			return
		}
		if !equalSorted(first.Functions.Sorted(), second.Functions.Sorted()) ||
			!equalSorted(first.FunctionPatterns.Sorted(), second.FunctionPatterns.Sorted()) {
			t.Fatalf("parse is not deterministic for %q", truncateForLog(input, 200))
		}
	})
}

// FuzzVersionScriptNoHang fails when a parse does not finish in parseTimeout.
func FuzzVersionScriptNoHang(f *testing.F) {
	addTestdataSeeds(f, ".map.txt", ".map")
	f.Add([]byte("LIB {{{{{{{{{{"))
	f.Add([]byte("LIB { global: global: local: ;;;; }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = versionscript.Parse(bytes.NewReader(input), "", "")
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("version script parse hang: took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func equalSorted(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
