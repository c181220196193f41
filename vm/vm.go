package vm

import (
	"go.uber.org/zap"

	otherside "github.com/syoyo/otherside"
	"github.com/syoyo/otherside/bytecode"
	"github.com/syoyo/otherside/errors"
)

const defaultMaxCallDepth = 256

// TraceFunc observes each instruction immediately before dispatch.
type TraceFunc func(fn *bytecode.Function, pc int, in bytecode.Instr)

// VM interprets one Program. Instances are single-use and not safe for
// concurrent access.
type VM struct {
	prog     *bytecode.Program
	values   map[uint32]Value
	sizes    map[uint32]uint32
	exts     map[uint32][]ExtInstFunc
	textures []*otherside.Texture
	provider Provider
	trace    TraceFunc
	current  *bytecode.Function
	depth    int
	maxDepth int
}

// Option configures a VM.
type Option func(*VM)

// WithProvider sets the extension provider used to resolve imported sets.
func WithProvider(p Provider) Option {
	return func(m *VM) { m.provider = p }
}

// WithTrace installs a per-instruction hook, for debuggers.
func WithTrace(t TraceFunc) Option {
	return func(m *VM) { m.trace = t }
}

// WithMaxCallDepth bounds function-call recursion.
func WithMaxCallDepth(n int) Option {
	return func(m *VM) { m.maxDepth = n }
}

// New creates a VM for prog. Setup must be called before Run.
func New(prog *bytecode.Program, opts ...Option) *VM {
	m := &VM{
		prog:     prog,
		values:   make(map[uint32]Value),
		sizes:    make(map[uint32]uint32),
		exts:     make(map[uint32][]ExtInstFunc),
		maxDepth: defaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Program returns the immutable program under execution.
func (m *VM) Program() *bytecode.Program { return m.prog }

// Setup resolves every extension import and materializes the constant
// table. It must succeed before Run.
func (m *VM) Setup() error {
	if err := m.resolveExtensions(); err != nil {
		Logger().Error("extension resolution failed", zap.Error(err))
		return err
	}
	if err := m.initializeConstants(); err != nil {
		Logger().Error("constant initialization failed", zap.Error(err))
		return err
	}
	return nil
}

// Run executes every entry point in declaration order. A function whose
// top-level result is not zero, or an execution error, stops the run.
func (m *VM) Run() error {
	for _, ep := range m.prog.EntryPoints {
		fn, ok := m.prog.Functions[ep.Function]
		if !ok {
			return errors.NotFound(errors.PhaseExec, "entry point function", ep.Function)
		}
		Logger().Debug("executing entry point", zap.String("name", ep.Name), zap.Uint32("function", ep.Function))
		result, err := m.execute(fn)
		if err != nil {
			return err
		}
		if result != 0 {
			return errors.New(errors.PhaseExec, errors.KindInvalidInput).
				Detail("entry point %q returned result %%%d", ep.Name, result).
				Build()
		}
	}
	return nil
}

// ReadVariable peeks a variable's current bytes. The returned slice
// aliases interpreter storage.
func (m *VM) ReadVariable(id uint32) ([]byte, bool) {
	v, ok := m.values[id]
	if !ok {
		return nil, false
	}
	d, err := m.dereference(v)
	if err != nil {
		return nil, false
	}
	return d.Mem, true
}

// ReadVariableName is ReadVariable keyed by debug name.
func (m *VM) ReadVariableName(name string) ([]byte, bool) {
	id, ok := m.prog.IDByName(name)
	if !ok {
		return nil, false
	}
	return m.ReadVariable(id)
}

// SetVariable injects src into a variable, allocating it on first use.
// Intended for binding inputs before Run.
func (m *VM) SetVariable(id uint32, src []byte) error {
	return m.setVariable(id, src)
}

// SetVariableName is SetVariable keyed by debug name.
func (m *VM) SetVariableName(name string, src []byte) error {
	id, ok := m.prog.IDByName(name)
	if !ok {
		return errors.New(errors.PhaseExec, errors.KindNotFound).
			Detail("no id named %q", name).
			Build()
	}
	return m.setVariable(id, src)
}

// BindTexture attaches embedder-owned texel storage to a sampled-image
// variable. The texture must outlive the run.
func (m *VM) BindTexture(id uint32, tex *otherside.Texture) error {
	if tex == nil {
		return errors.InvalidInput(errors.PhaseSetup, "nil texture")
	}
	if len(tex.Dims) == 0 || len(tex.Dims) > 3 {
		return errors.InvalidInput(errors.PhaseSetup, "texture must have 1 to 3 dimensions")
	}
	m.textures = append(m.textures, tex)
	handle := uint32(len(m.textures))
	return m.setVariable(id, U32Bytes(handle))
}

// BindTextureName is BindTexture keyed by debug name.
func (m *VM) BindTextureName(name string, tex *otherside.Texture) error {
	id, ok := m.prog.IDByName(name)
	if !ok {
		return errors.New(errors.PhaseSetup, errors.KindNotFound).
			Detail("no id named %q", name).
			Build()
	}
	return m.BindTexture(id, tex)
}

func (m *VM) textureByHandle(handle uint32) (*otherside.Texture, error) {
	if handle == 0 || int(handle) > len(m.textures) {
		return nil, errors.New(errors.PhaseSample, errors.KindNotFound).
			Detail("sampler handle %d not bound", handle).
			Build()
	}
	return m.textures[handle-1], nil
}
