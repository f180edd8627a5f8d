package dump

import (
	"fmt"

	"github.com/rawbytedev/atom"
)

// Check walks a and every record nested in it and fails with
// atom.ErrShortBuffer when a declared size reaches past its container or is
// too small for its type. Atoms of unknown type are only checked against
// their container.
func Check(a atom.Atom, ts atom.Types) error {
	v, err := atom.View(a)
	if err != nil {
		return err
	}
	return check(v, ts)
}

// check expects a trimmed to its header and body.
func check(a atom.Atom, ts atom.Types) error {
	t := a.Type()
	switch {
	case t == 0:
		return nil
	case t == ts.Int || t == ts.Float || t == ts.Bool || t == ts.URID:
		return atLeast(a, 4)
	case t == ts.Long || t == ts.Double:
		return atLeast(a, 8)
	case t == ts.Literal:
		return atLeast(a, atom.LiteralBodySize)
	case t == ts.Vector:
		if err := atLeast(a, atom.VectorBodySize); err != nil {
			return err
		}
		vec := a.AsVector()
		for i := range vec.Len() {
			if err := check(vectorElem(vec, i), ts); err != nil {
				return fmt.Errorf("vector element %d: %w", i, err)
			}
		}
	case t == ts.Tuple:
		return checkRecords(a, 0, 0, ts)
	case ts.IsObject(t):
		if err := atLeast(a, atom.ObjectBodySize); err != nil {
			return err
		}
		return checkRecords(a, atom.ObjectBodySize, 8, ts)
	case t == ts.Sequence:
		if err := atLeast(a, atom.SequenceBodySize); err != nil {
			return err
		}
		return checkRecords(a, atom.SequenceBodySize, 8, ts)
	}
	return nil
}

func atLeast(a atom.Atom, n uint32) error {
	if a.Size() < n {
		return fmt.Errorf("%w: %d byte body, type needs %d", atom.ErrShortBuffer, a.Size(), n)
	}
	return nil
}

// checkRecords walks the body of a from start. Each record is lead bytes
// (property key and context, or event stamp) followed by an atom.
func checkRecords(a atom.Atom, start, lead uint32, ts atom.Types) error {
	body := a.Body()
	end := uint64(len(body))
	for pos := uint64(start); pos < end; {
		at := pos + uint64(lead)
		if at > end {
			return fmt.Errorf("%w: record at body offset %d", atom.ErrShortBuffer, pos)
		}
		child, err := atom.View(body[at:])
		if err != nil {
			return fmt.Errorf("record at body offset %d: %w", pos, err)
		}
		if err := check(child, ts); err != nil {
			return fmt.Errorf("record at body offset %d: %w", pos, err)
		}
		pos = at + uint64(atom.PadSize(atom.TotalSize(child)))
	}
	return nil
}
