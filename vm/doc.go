// Package vm implements the shader bytecode interpreter.
//
// A VM owns a typed-value memory model: every runtime value is a
// (type-id, byte buffer) pair, with the type table as the sole authority
// on layout. Pointer-typed values reference regions inside other values'
// buffers, so stores through pointers are visible to every alias.
//
// Execution is single-threaded and synchronous. Setup resolves extension
// imports and materializes constants; Run executes each entry point in
// order. Setup-phase failures are returned from Setup; execution-phase
// failures unwind through recursive function calls and are returned from
// Run. There are no partial-success semantics.
package vm
