package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSetup     Phase = "setup"     // driver setup
	PhaseConstants Phase = "constants" // constant table initialization
	PhaseExtension Phase = "extension" // extension set resolution
	PhaseLayout    Phase = "layout"    // type table size queries
	PhaseExec      Phase = "exec"      // instruction dispatch
	PhaseSample    Phase = "sample"    // image sampling
)

// Kind categorizes the error
type Kind string

const (
	KindExtensionLoad   Kind = "extension_load"
	KindBadConstant     Kind = "bad_constant"
	KindUnknownOpcode   Kind = "unknown_opcode"
	KindTypeMismatch    Kind = "type_mismatch"
	KindIndexOutOfRange Kind = "index_out_of_range"
	KindMalformedModule Kind = "malformed_module"
	KindNotFound        Kind = "not_found"
	KindInvalidInput    Kind = "invalid_input"
)

// Error is the structured error type used throughout the interpreter
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Opcode string
	Detail string
	Path   []string
	TypeID uint32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Opcode != "" {
		b.WriteString(": op ")
		b.WriteString(e.Opcode)
	}
	if e.TypeID != 0 {
		if e.Opcode != "" {
			b.WriteString(", type %")
		} else {
			b.WriteString(": type %")
		}
		fmt.Fprintf(&b, "%d", e.TypeID)
	}

	if e.Detail != "" {
		if e.Opcode != "" || e.TypeID != 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the value path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// TypeID sets the offending type-id
func (b *Builder) TypeID(id uint32) *Builder {
	b.err.TypeID = id
	return b
}

// Opcode sets the offending opcode name
func (b *Builder) Opcode(op string) *Builder {
	b.err.Opcode = op
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// ExtensionLoad creates an extension resolution failure error
func ExtensionLoad(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseExtension,
		Kind:   KindExtensionLoad,
		Detail: fmt.Sprintf("extension set %q could not be resolved", name),
		Cause:  cause,
	}
}

// BadConstant creates an error for a non-constant opcode in the constant table
func BadConstant(op string, resultID uint32) *Error {
	return &Error{
		Phase:  PhaseConstants,
		Kind:   KindBadConstant,
		Opcode: op,
		Detail: fmt.Sprintf("operation does not define a constant (result %%%d)", resultID),
	}
}

// UnknownOpcode creates an unimplemented instruction error
func UnknownOpcode(phase Phase, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownOpcode,
		Opcode: op,
		Detail: "unimplemented operation",
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, typeID uint32, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		TypeID: typeID,
		Detail: detail,
	}
}

// IndexOutOfRange creates an out of range composite index error
func IndexOutOfRange(phase Phase, index, length uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIndexOutOfRange,
		Detail: fmt.Sprintf("index %d out of range (length %d)", index, length),
		Value:  index,
	}
}

// MalformedModule creates an error for structurally broken module input
func MalformedModule(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMalformedModule,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// NotFound creates a lookup failure error
func NotFound(phase Phase, what string, id uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %%%d not found", what, id),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
