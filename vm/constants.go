package vm

import (
	"github.com/syoyo/otherside/bytecode"
	"github.com/syoyo/otherside/errors"
)

// initializeConstants materializes the module's constant table in
// declaration order, so composites can reference earlier constituents.
func (m *VM) initializeConstants() error {
	for _, c := range m.prog.Constants {
		switch c := c.(type) {
		case bytecode.ConstScalar:
			v, err := m.initValue(c.ResultType, c.Payload)
			if err != nil {
				return err
			}
			m.values[c.Result] = v

		case bytecode.ConstComposite:
			v, err := m.initValue(c.ResultType, nil)
			if err != nil {
				return err
			}
			var off uint32
			for _, cid := range c.Constituents {
				part, err := m.value(cid)
				if err != nil {
					return errors.Wrap(errors.PhaseConstants, errors.KindMalformedModule, err,
						"composite constant constituent not materialized")
				}
				size, err := m.ByteSize(part.TypeID)
				if err != nil {
					return err
				}
				copy(v.Mem[off:], part.Mem[:size])
				off += size
			}
			if off != uint32(len(v.Mem)) {
				return errors.MalformedModule(errors.PhaseConstants,
					"composite constant %%%d fills %d of %d bytes", c.Result, off, len(v.Mem))
			}
			m.values[c.Result] = v

		case bytecode.ConstBool:
			v, err := m.initValue(c.ResultType, nil)
			if err != nil {
				return err
			}
			if c.Value {
				v.Mem[0] = 1
			}
			m.values[c.Result] = v

		default:
			return errors.BadConstant(c.ConstOp().String(), c.ResultID())
		}
	}
	return nil
}
