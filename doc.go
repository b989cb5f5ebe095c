// Package avro models Avro schemas as validated node trees and builds them
// incrementally from schema documents:
//
//   - A closed set of node kinds (primitives, record, enum, array, map, union,
//     fixed, symbolic) behind one Node contract with kind-specific invariants
//   - A stack-based CompilerContext that consumes build events and assembles
//     the tree, including namespace scoping and forward references
//   - ValidSchema, which resolves named-type references (backpatching symbolic
//     placeholders with non-owning links) and gates on per-kind validation
//   - Writer/reader schema resolution with an explicit promotion table
//   - Streaming JSON/YAML front ends via pluggable token sources
//
// Design policy:
//   - Keep only public APIs in the root package; put token plumbing under
//     internal/ and concrete input drivers under source/.
//   - A finished, validated tree is immutable and safe to share across
//     goroutines; all mutation happens inside the builder.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	schema, err := avro.CompileBytes(data)
//	root := schema.Root()
//	res := writerRoot.Resolve(readerRoot)
package avro
