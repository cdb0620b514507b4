// Package linker merges per-file ABI descriptors into one library descriptor.
//
// An Accumulator owns the linked descriptor and every piece of state that
// must persist across inputs:
//
//   - the seen set shared by all type categories (plain first-wins dedup),
//   - per symbol category (functions, global variables) either a plain seen
//     set or, in symbol mode, the consume-once exact set plus a wildcard
//     matcher with its matched record.
//
// Entities are admitted in input order and then declaration order, so the
// output is a deterministic function of the input sequence. The accumulator is
// not safe for concurrent use; acceptance of duplicates and consumption of
// exact symbols are order sensitive by construction.
package linker
