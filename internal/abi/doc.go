// Package abi defines the ABI descriptor model consumed and produced by the
// linker.
//
// A TranslationUnit groups entities by Category. The same type is used for the
// per-source-file descriptors emitted by the header scanner and for the
// whole-library descriptor assembled by the linker.
//
// Every entity kind implements Entity, which exposes the two attributes the
// linker filters on: the linkage key (globally meaningful identity) and the
// source file the entity was declared in. All other fields are payload carried
// through untouched.
package abi
