// Package bytecode defines the in-memory representation of a parsed
// shader module: opcodes, type descriptors, instructions, functions, and
// the Program container the interpreter executes.
//
// A Program is normally produced by a binary module parser. The Builder
// offers an id-allocating construction API for embedders and tests that
// assemble programs directly.
package bytecode
