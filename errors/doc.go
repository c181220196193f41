// Package errors provides structured error types for the otherside interpreter.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: the offending type-id or
// opcode, a value path, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseExec, errors.KindTypeMismatch).
//		TypeID(14).
//		Detail("not a composite type").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownOpcode(errors.PhaseExec, "OpKill")
//	err := errors.IndexOutOfRange(errors.PhaseExec, 5, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
