// Package otherside provides a reference interpreter for SPIR-V-style
// shader bytecode.
//
// The interpreter executes a parsed shader module on the CPU, reproducing
// the observable effects of shader code (stores to output variables,
// texture sampling results, return values) without a GPU. The primary
// consumer is a shader debugger or reference executor.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	otherside/           Root package with Texture and WrapMode types
//	├── bytecode/        Program representation: opcodes, types, instructions
//	├── vm/              Typed-value memory model and dispatch loop
//	├── glslstd/         In-process GLSL.std.450-style extension set
//	├── extwasm/         wazero-backed extension provider
//	├── texture/         Image file loading into Texture values
//	├── errors/          Structured error types for debugging
//	└── cmd/othersidevm/ CLI runner and interactive step debugger
//
// # Quick Start
//
// Build a program, run it, read the output:
//
//	b := bytecode.NewBuilder()
//	// ... declare types, constants, functions, an entry point ...
//	prog := b.Program()
//
//	m := vm.New(prog, vm.WithProvider(glslstd.Provider{}))
//	if err := m.Setup(); err != nil {
//	    log.Fatal(err)
//	}
//	m.SetVariableName("t", vm.F32Bytes(0.25))
//	if err := m.Run(); err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := m.ReadVariableName("color")
//
// # Memory Model
//
// Every runtime value is a (type-id, byte buffer) pair. The vm package's
// type table is the sole authority on layout; struct members are packed
// contiguously with no padding. Buffers are owned by the VM instance for
// the lifetime of a run. Texture data is borrowed from the embedder and
// must outlive the run.
//
// # Thread Safety
//
// A VM executes a single program on a single goroutine. VM instances are
// NOT safe for concurrent use; run one program per instance.
package otherside
