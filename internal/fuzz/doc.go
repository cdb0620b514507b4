// Package fuzztests houses Go fuzz harnesses for the text-facing inputs of
// the linker: version scripts, descriptor files and symbol patterns. The goal
// is to guard against panics, hangs and non-deterministic results on
// arbitrary bytes.
//
// Seeds come from the repository testdata tree plus a few inline cases.
package fuzztests
