package atom

import (
	"iter"

	"github.com/rawbytedev/atom/internal/common"
)

// Literal is a decoded atom:Literal body.
type Literal struct {
	Datatype URID
	Lang     URID
	Text     string
}

// AsLiteral reads an atom:Literal: datatype and lang, then the string bytes.
func (a Atom) AsLiteral() Literal {
	return Literal{
		Datatype: URID(common.U32(a, HeaderSize)),
		Lang:     URID(common.U32(a, HeaderSize+4)),
		Text:     cstring(a.Body()[LiteralBodySize:]),
	}
}

// Tuple is a view over an atom:Tuple, a run of complete padded atoms.
type Tuple Atom

func (a Atom) AsTuple() Tuple { return Tuple(a) }

func (t Tuple) Atom() Atom { return Atom(t) }

// Atoms yields every child atom in order.
func (t Tuple) Atoms() iter.Seq[Atom] {
	return func(yield func(Atom) bool) {
		end := HeaderSize + Atom(t).Size()
		for pos := uint32(HeaderSize); pos < end; {
			child := Atom(t[pos:])
			if !yield(child) {
				return
			}
			pos += PadSize(TotalSize(child))
		}
	}
}

// Len counts the children. It walks the tuple.
func (t Tuple) Len() int {
	n := 0
	for range t.Atoms() {
		n++
	}
	return n
}

// Vector is a view over an atom:Vector: a child header followed by tightly
// packed element bodies of ChildSize bytes each.
type Vector Atom

func (a Atom) AsVector() Vector { return Vector(a) }

func (v Vector) Atom() Atom        { return Atom(v) }
func (v Vector) ChildSize() uint32 { return common.U32(v, HeaderSize) }
func (v Vector) ChildType() URID   { return URID(common.U32(v, HeaderSize+4)) }

// Len returns the number of elements. A zero child size yields 0.
func (v Vector) Len() int {
	cs := v.ChildSize()
	if cs == 0 {
		return 0
	}
	return int((Atom(v).Size() - VectorBodySize) / cs)
}

// Elem returns the body bytes of element i.
func (v Vector) Elem(i int) []byte {
	cs := v.ChildSize()
	start := HeaderSize + VectorBodySize + uint32(i)*cs
	return v[start : start+cs]
}
