package atom

import (
	"iter"

	"github.com/rawbytedev/atom/internal/common"
)

// Object is a view over an atom:Object. Its body is {id, otype} followed by
// property records, each padded to 8 bytes.
type Object Atom

func (a Atom) AsObject() Object { return Object(a) }

func (o Object) Atom() Atom { return Atom(o) }

// ID returns the subject URID, or 0 for a blank object.
func (o Object) ID() URID { return URID(common.U32(o, HeaderSize)) }

// OType returns the object's type URID.
func (o Object) OType() URID { return URID(common.U32(o, HeaderSize+4)) }

// Property is a view over a property body: key, context, then the value atom.
// It aliases the object's buffer and is only valid while that buffer is.
type Property []byte

func (p Property) Key() URID     { return URID(common.U32(p, 0)) }
func (p Property) Context() URID { return URID(common.U32(p, 4)) }

// Value returns the value atom. Writing through its setters mutates the
// object in place.
func (p Property) Value() Atom { return Atom(p[8:]) }

// stride is the distance to the next property: the padded property header
// plus value size.
func (p Property) stride() uint32 {
	return PadSize(PropertyHeaderSize + p.Value().Size())
}

// PropertyIter is a cursor over an object's properties. Positions are body
// offsets (relative to the byte after the atom header).
type PropertyIter struct {
	obj Object
	pos uint32
}

// Begin returns a cursor on the first property, right after {id, otype}.
func (o Object) Begin() PropertyIter {
	return PropertyIter{obj: o, pos: ObjectBodySize}
}

// IsEnd reports whether the cursor is at or past the declared body size.
func (it PropertyIter) IsEnd() bool {
	return it.pos >= Atom(it.obj).Size()
}

// Next advances past the current property.
func (it PropertyIter) Next() PropertyIter {
	it.pos += it.Property().stride()
	return it
}

// Offset returns the body offset of the cursor.
func (it PropertyIter) Offset() uint32 { return it.pos }

// Property returns the property under the cursor.
func (it PropertyIter) Property() Property {
	return Property(it.obj[HeaderSize+it.pos:])
}

// ForEach calls fn for every property in order until fn returns true.
func (o Object) ForEach(fn func(Property) (stop bool)) {
	for it := o.Begin(); !it.IsEnd(); it = it.Next() {
		if fn(it.Property()) {
			return
		}
	}
}

// Properties yields every property in stored order.
func (o Object) Properties() iter.Seq[Property] {
	return func(yield func(Property) bool) {
		o.ForEach(func(p Property) bool { return !yield(p) })
	}
}

// Get returns the value of the first property with the given key.
func (o Object) Get(key URID) (Atom, bool) {
	var v Atom
	o.ForEach(func(p Property) bool {
		if p.Key() == key {
			v = p.Value()
			return true
		}
		return false
	})
	return v, v != nil
}

// Len counts the properties. It walks the object.
func (o Object) Len() int {
	n := 0
	o.ForEach(func(Property) bool { n++; return false })
	return n
}
