package vm

import (
	"go.uber.org/zap"

	"github.com/syoyo/otherside/bytecode"
	"github.com/syoyo/otherside/errors"
)

// variableValue returns the runtime value for id, materializing declared
// variables on first touch so inputs the embedder never injected still
// read as zero.
func (m *VM) variableValue(id uint32) (Value, error) {
	if v, ok := m.values[id]; ok {
		return v, nil
	}
	decl, ok := m.varDecl(id)
	if !ok {
		return Value{}, errors.NotFound(errors.PhaseExec, "value", id)
	}
	v, err := m.allocVariable(decl.ResultType)
	if err != nil {
		return Value{}, err
	}
	if decl.Initializer != 0 {
		init, err := m.operand(decl.Initializer)
		if err != nil {
			return Value{}, err
		}
		d, err := m.dereference(v)
		if err != nil {
			return Value{}, err
		}
		copy(d.Mem, init.Mem)
	}
	m.values[id] = v
	return v, nil
}

// execute runs fn to completion and returns the result-id produced by
// ReturnValue, or zero for a plain Return. Execution errors abort the
// whole run; they unwind through nested calls untouched.
func (m *VM) execute(fn *bytecode.Function) (uint32, error) {
	if m.depth >= m.maxDepth {
		return bytecode.NoID, errors.New(errors.PhaseExec, errors.KindInvalidInput).
			Detail("call depth exceeds %d", m.maxDepth).
			Build()
	}
	m.depth++
	prev := m.current
	m.current = fn
	defer func() {
		m.current = prev
		m.depth--
	}()

	pc := 0
	for {
		if pc < 0 || pc >= len(fn.Ops) {
			return bytecode.NoID, errors.MalformedModule(errors.PhaseExec,
				"function %%%d ran past its last instruction", fn.Result)
		}
		in := fn.Ops[pc]
		if m.trace != nil {
			m.trace(fn, pc, in)
		}

		switch in := in.(type) {
		case bytecode.Label, bytecode.SelectionMerge, bytecode.LoopMerge:
			// structural hints only

		case bytecode.Branch:
			idx, ok := fn.Labels[in.Target]
			if !ok {
				return bytecode.NoID, errors.NotFound(errors.PhaseExec, "label", in.Target)
			}
			pc = idx

		case bytecode.BranchConditional:
			cond, err := m.operand(in.Condition)
			if err != nil {
				return bytecode.NoID, err
			}
			target := in.False
			if cond.Bool() {
				target = in.True
			}
			idx, ok := fn.Labels[target]
			if !ok {
				return bytecode.NoID, errors.NotFound(errors.PhaseExec, "label", target)
			}
			pc = idx

		case bytecode.FunctionCall:
			callee, ok := m.prog.Functions[in.Function]
			if !ok {
				return bytecode.NoID, errors.NotFound(errors.PhaseExec, "function", in.Function)
			}
			if len(in.Args) != len(callee.Params) {
				return bytecode.NoID, errors.MalformedModule(errors.PhaseExec,
					"call to %%%d passes %d args for %d params", in.Function, len(in.Args), len(callee.Params))
			}
			for i, arg := range in.Args {
				v, err := m.operand(arg)
				if err != nil {
					return bytecode.NoID, err
				}
				m.values[callee.Params[i].Result] = v
			}
			rid, err := m.execute(callee)
			if err != nil {
				return bytecode.NoID, err
			}
			if rid != 0 {
				rv, err := m.value(rid)
				if err != nil {
					return bytecode.NoID, err
				}
				m.values[in.Result] = rv
			}

		case bytecode.ExtInst:
			fnc, err := m.extInst(in.Set, in.Instruction)
			if err != nil {
				return bytecode.NoID, err
			}
			operands := make([]Value, len(in.Operands))
			for i, id := range in.Operands {
				v, err := m.operand(id)
				if err != nil {
					return bytecode.NoID, err
				}
				operands[i] = v
			}
			res, err := fnc(m, in.ResultType, operands)
			if err != nil {
				return bytecode.NoID, err
			}
			m.values[in.Result] = res

		case bytecode.Load:
			// Lazy: the pointer value itself is installed; consumers
			// dereference at use.
			v, err := m.variableValue(in.Pointer)
			if err != nil {
				return bytecode.NoID, err
			}
			m.values[in.Result] = v

		case bytecode.Store:
			obj, err := m.operand(in.Object)
			if err != nil {
				return bytecode.NoID, err
			}
			if err := m.setVariable(in.Pointer, obj.Mem); err != nil {
				return bytecode.NoID, err
			}

		case bytecode.AccessChain:
			base, err := m.variableValue(in.Base)
			if err != nil {
				return bytecode.NoID, err
			}
			base, err = m.dereference(base)
			if err != nil {
				return bytecode.NoID, err
			}
			indices := make([]uint32, len(in.Indices))
			for i, id := range in.Indices {
				iv, err := m.operand(id)
				if err != nil {
					return bytecode.NoID, err
				}
				indices[i] = iv.U32()
			}
			leaf, err := m.pointerInComposite(base.TypeID, base.Mem, indices)
			if err != nil {
				return bytecode.NoID, err
			}
			m.values[in.Result] = Value{TypeID: in.ResultType, Mem: leaf.Mem}

		case bytecode.CompositeExtract:
			composite, err := m.value(in.Composite)
			if err != nil {
				return bytecode.NoID, err
			}
			leaf, err := m.pointerInComposite(composite.TypeID, composite.Mem, in.Indices)
			if err != nil {
				return bytecode.NoID, err
			}
			v, err := m.initValue(in.ResultType, leaf.Mem)
			if err != nil {
				return bytecode.NoID, err
			}
			m.values[in.Result] = v

		case bytecode.CompositeInsert:
			composite, err := m.operand(in.Composite)
			if err != nil {
				return bytecode.NoID, err
			}
			obj, err := m.operand(in.Object)
			if err != nil {
				return bytecode.NoID, err
			}
			leaf, err := m.pointerInComposite(composite.TypeID, composite.Mem, in.Indices)
			if err != nil {
				return bytecode.NoID, err
			}
			copy(leaf.Mem, obj.Mem)
			// The result aliases the mutated composite's storage.
			m.values[in.Result] = Value{TypeID: in.ResultType, Mem: composite.Mem}

		case bytecode.CompositeConstruct:
			result, err := m.initValue(in.ResultType, nil)
			if err != nil {
				return bytecode.NoID, err
			}
			var off uint32
			for _, cid := range in.Constituents {
				part, err := m.operand(cid)
				if err != nil {
					return bytecode.NoID, err
				}
				size, err := m.ByteSize(part.TypeID)
				if err != nil {
					return bytecode.NoID, err
				}
				if off+size > uint32(len(result.Mem)) {
					return bytecode.NoID, errors.MalformedModule(errors.PhaseExec,
						"composite %%%d overflows its result type", in.Result)
				}
				copy(result.Mem[off:], part.Mem[:size])
				off += size
			}
			if off != uint32(len(result.Mem)) {
				return bytecode.NoID, errors.MalformedModule(errors.PhaseExec,
					"composite %%%d fills %d of %d bytes", in.Result, off, len(result.Mem))
			}
			m.values[in.Result] = result

		case bytecode.VectorShuffle:
			v1, err := m.operand(in.V1)
			if err != nil {
				return bytecode.NoID, err
			}
			v2, err := m.operand(in.V2)
			if err != nil {
				return bytecode.NoID, err
			}
			result, err := m.initValue(in.ResultType, nil)
			if err != nil {
				return bytecode.NoID, err
			}
			v1Count := m.ElementCount(v1.TypeID)
			for i, sel := range in.Components {
				src, idx := v1, sel
				if sel >= v1Count {
					src, idx = v2, sel-v1Count
				}
				el, err := m.indexMember(src.TypeID, src.Mem, idx)
				if err != nil {
					return bytecode.NoID, err
				}
				slot, err := m.indexMember(result.TypeID, result.Mem, uint32(i))
				if err != nil {
					return bytecode.NoID, err
				}
				copy(slot.Mem, el.Mem)
			}
			m.values[in.Result] = result

		case bytecode.Binary:
			k, ok := binaryKernels[in.Op]
			if !ok {
				return bytecode.NoID, errors.UnknownOpcode(errors.PhaseExec, in.Op.String())
			}
			x, err := m.operand(in.X)
			if err != nil {
				return bytecode.NoID, err
			}
			y, err := m.operand(in.Y)
			if err != nil {
				return bytecode.NoID, err
			}
			res, err := m.doOp(in.ResultType, k, x, y)
			if err != nil {
				return bytecode.NoID, err
			}
			m.values[in.Result] = res

		case bytecode.ConvertSToF:
			v, err := m.operand(in.Value)
			if err != nil {
				return bytecode.NoID, err
			}
			res, err := m.doOp(in.ResultType, convertSToFKernel, v)
			if err != nil {
				return bytecode.NoID, err
			}
			m.values[in.Result] = res

		case bytecode.VectorTimesScalar:
			vec, err := m.operand(in.Vector)
			if err != nil {
				return bytecode.NoID, err
			}
			s, err := m.operand(in.Scalar)
			if err != nil {
				return bytecode.NoID, err
			}
			res, err := m.vectorTimesScalar(in.ResultType, vec, s)
			if err != nil {
				return bytecode.NoID, err
			}
			m.values[in.Result] = res

		case bytecode.ImageSampleImplicitLod:
			sampled, err := m.operand(in.SampledImage)
			if err != nil {
				return bytecode.NoID, err
			}
			coord, err := m.operand(in.Coordinate)
			if err != nil {
				return bytecode.NoID, err
			}
			res, err := m.textureSample(sampled, coord, in.ResultType)
			if err != nil {
				return bytecode.NoID, err
			}
			m.values[in.Result] = res

		case bytecode.Variable:
			v, err := m.allocVariable(in.ResultType)
			if err != nil {
				return bytecode.NoID, err
			}
			if in.Initializer != 0 {
				init, err := m.operand(in.Initializer)
				if err != nil {
					return bytecode.NoID, err
				}
				d, err := m.dereference(v)
				if err != nil {
					return bytecode.NoID, err
				}
				copy(d.Mem, init.Mem)
			}
			m.values[in.Result] = v

		case bytecode.ReturnValue:
			return in.Value, nil

		case bytecode.Return:
			return 0, nil

		default:
			err := errors.UnknownOpcode(errors.PhaseExec, in.Opcode().String())
			Logger().Error("unimplemented operation",
				zap.Stringer("op", in.Opcode()),
				zap.Uint32("function", fn.Result),
				zap.Int("pc", pc))
			return bytecode.NoID, err
		}

		pc++
	}
}
