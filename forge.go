package atom

import (
	"fmt"
	"math"

	"github.com/rawbytedev/atom/internal/common"
)

// Forge writes atoms into a fixed, caller-owned buffer. Every atom is padded
// to 8 bytes and every open container grows by the bytes written inside it.
// A Forge never reallocates: a write that does not fit fails with ErrNoSpace
// and leaves the buffer untouched.
type Forge struct {
	Types Types

	buf         []byte
	off         uint32
	stack       []uint32 // header offsets of open containers, innermost last
	scratch     [8]byte
	zeroPadding [8]byte
}

// Frame identifies an open container returned by a Begin call.
type Frame struct {
	off   uint32
	depth int
}

// Offset returns the buffer offset of the container header.
func (fr Frame) Offset() uint32 { return fr.off }

func NewForge(buf []byte, types Types) *Forge {
	return &Forge{Types: types, buf: buf}
}

// Reset points the forge at buf and drops every open frame.
func (f *Forge) Reset(buf []byte) {
	f.buf = buf
	f.off = 0
	f.stack = f.stack[:0]
}

// Len returns the number of bytes written so far, padding included.
func (f *Forge) Len() int { return int(f.off) }

// Bytes returns everything written so far.
func (f *Forge) Bytes() []byte { return f.buf[:f.off] }

// At returns the atom whose header sits at off.
func (f *Forge) At(off uint32) Atom { return Atom(f.buf[off:]) }

// Depth is the number of open containers.
func (f *Forge) Depth() int { return len(f.stack) }

func (f *Forge) fits(n uint32) error {
	if uint64(f.off)+uint64(n) > uint64(len(f.buf)) {
		return fmt.Errorf("%w: need %d bytes at offset %d, buffer holds %d", ErrNoSpace, n, f.off, len(f.buf))
	}
	return nil
}

// advance moves past n written bytes and grows every open container.
func (f *Forge) advance(n uint32) {
	f.off += n
	for _, h := range f.stack {
		Atom(f.buf[h:]).setSize(Atom(f.buf[h:]).Size() + n)
	}
}

// head reserves a padded atom with an n-byte body, writes its header and the
// trailing zero padding, and returns the header offset. The caller fills the
// body.
func (f *Forge) head(typ URID, n uint32) (uint32, error) {
	need := PadSize(HeaderSize + n)
	if err := f.fits(need); err != nil {
		return 0, err
	}
	at := f.off
	common.PutU32(f.buf, at, n)
	common.PutU32(f.buf, at+4, uint32(typ))
	copy(f.buf[at+HeaderSize+n:at+need], f.zeroPadding[:])
	f.advance(need)
	return at, nil
}

func (f *Forge) fixed(typ URID, body []byte) (Atom, error) {
	at, err := f.head(typ, uint32(len(body)))
	if err != nil {
		return nil, err
	}
	copy(f.buf[at+HeaderSize:], body)
	return f.At(at), nil
}

func (f *Forge) Int(v int32) (Atom, error) {
	common.PutU32(f.scratch[:], 0, uint32(v))
	return f.fixed(f.Types.Int, f.scratch[:4])
}

func (f *Forge) Long(v int64) (Atom, error) {
	common.PutU64(f.scratch[:], 0, uint64(v))
	return f.fixed(f.Types.Long, f.scratch[:8])
}

func (f *Forge) Float(v float32) (Atom, error) {
	common.PutU32(f.scratch[:], 0, math.Float32bits(v))
	return f.fixed(f.Types.Float, f.scratch[:4])
}

func (f *Forge) Double(v float64) (Atom, error) {
	common.PutU64(f.scratch[:], 0, math.Float64bits(v))
	return f.fixed(f.Types.Double, f.scratch[:8])
}

func (f *Forge) Bool(v bool) (Atom, error) {
	var i uint32
	if v {
		i = 1
	}
	common.PutU32(f.scratch[:], 0, i)
	return f.fixed(f.Types.Bool, f.scratch[:4])
}

func (f *Forge) URID(v URID) (Atom, error) {
	common.PutU32(f.scratch[:], 0, uint32(v))
	return f.fixed(f.Types.URID, f.scratch[:4])
}

// str writes prefix, s and a terminating NUL as the body of a typ atom.
func (f *Forge) str(typ URID, prefix []byte, s string) (Atom, error) {
	n := uint32(len(prefix) + len(s) + 1)
	at, err := f.head(typ, n)
	if err != nil {
		return nil, err
	}
	pos := at + HeaderSize
	pos += uint32(copy(f.buf[pos:], prefix))
	pos += uint32(copy(f.buf[pos:], s))
	f.buf[pos] = 0
	return f.At(at), nil
}

func (f *Forge) Str(s string) (Atom, error)  { return f.str(f.Types.String, nil, s) }
func (f *Forge) Path(s string) (Atom, error) { return f.str(f.Types.Path, nil, s) }
func (f *Forge) URI(s string) (Atom, error)  { return f.str(f.Types.URI, nil, s) }

// Literal writes an atom:Literal with the given datatype and language URIDs.
func (f *Forge) Literal(s string, datatype, lang URID) (Atom, error) {
	var prefix [LiteralBodySize]byte
	common.PutU32(prefix[:], 0, uint32(datatype))
	common.PutU32(prefix[:], 4, uint32(lang))
	return f.str(f.Types.Literal, prefix[:], s)
}

func (f *Forge) Chunk(b []byte) (Atom, error) { return f.fixed(f.Types.Chunk, b) }

// Vector writes an atom:Vector. elems holds the packed element bodies and
// its length must be a multiple of childSize.
func (f *Forge) Vector(childType URID, childSize uint32, elems []byte) (Atom, error) {
	if childSize == 0 || uint32(len(elems))%childSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes of %d-byte elements", ErrUnsupported, len(elems), childSize)
	}
	at, err := f.head(f.Types.Vector, VectorBodySize+uint32(len(elems)))
	if err != nil {
		return nil, err
	}
	common.PutU32(f.buf, at+HeaderSize, childSize)
	common.PutU32(f.buf, at+HeaderSize+4, uint32(childType))
	copy(f.buf[at+HeaderSize+VectorBodySize:], elems)
	return f.At(at), nil
}

// Write copies a complete atom.
func (f *Forge) Write(a Atom) (Atom, error) {
	at, err := f.head(a.Type(), a.Size())
	if err != nil {
		return nil, err
	}
	copy(f.buf[at+HeaderSize:], a.Body())
	return f.At(at), nil
}

// push writes a container header with a body prefix of n bytes and opens it.
func (f *Forge) push(typ URID, prefix []byte) (Frame, error) {
	n := uint32(len(prefix))
	need := HeaderSize + n
	if err := f.fits(need); err != nil {
		return Frame{}, err
	}
	at := f.off
	common.PutU32(f.buf, at, n)
	common.PutU32(f.buf, at+4, uint32(typ))
	copy(f.buf[at+HeaderSize:], prefix)
	f.advance(need)
	f.stack = append(f.stack, at)
	return Frame{off: at, depth: len(f.stack)}, nil
}

func (f *Forge) BeginTuple() (Frame, error) {
	return f.push(f.Types.Tuple, nil)
}

// BeginObject opens an atom:Object with the given subject (0 for blank) and
// type. Write properties with Key or KeyContext followed by a value atom.
func (f *Forge) BeginObject(id, otype URID) (Frame, error) {
	var prefix [ObjectBodySize]byte
	common.PutU32(prefix[:], 0, uint32(id))
	common.PutU32(prefix[:], 4, uint32(otype))
	return f.push(f.Types.Object, prefix[:])
}

// BeginSequence opens an atom:Sequence. Write events with FrameTime or
// BeatTime followed by a body atom.
func (f *Forge) BeginSequence(unit URID) (Frame, error) {
	var prefix [SequenceBodySize]byte
	common.PutU32(prefix[:], 0, uint32(unit))
	return f.push(f.Types.Sequence, prefix[:])
}

func (f *Forge) raw8(v uint64) error {
	if err := f.fits(8); err != nil {
		return err
	}
	common.PutU64(f.buf, f.off, v)
	f.advance(8)
	return nil
}

func (f *Forge) Key(key URID) error { return f.KeyContext(key, 0) }

// KeyContext writes a property head. The next atom written is its value.
func (f *Forge) KeyContext(key, context URID) error {
	return f.raw8(uint64(key) | uint64(context)<<32)
}

// FrameTime writes an event stamp in frames. The next atom is the body.
func (f *Forge) FrameTime(frames int64) error { return f.raw8(uint64(frames)) }

// BeatTime writes an event stamp in beats. The next atom is the body.
func (f *Forge) BeatTime(beats float64) error { return f.raw8(math.Float64bits(beats)) }

// Stamp writes t in whatever unit it carries.
func (f *Forge) Stamp(t Timestamp) error { return f.raw8(uint64(t.Raw())) }

// abort discards fr together with everything written since it was opened,
// nested frames included. Enclosing frames shrink back to their earlier sizes.
func (f *Forge) abort(fr Frame) {
	n := len(f.stack)
	if fr.depth < 1 || fr.depth > n || f.stack[fr.depth-1] != fr.off {
		return
	}
	dropped := f.off - fr.off
	f.stack = f.stack[:fr.depth-1]
	for _, h := range f.stack {
		Atom(f.buf[h:]).setSize(Atom(f.buf[h:]).Size() - dropped)
	}
	f.off = fr.off
}

// Pop closes fr, which must be the innermost open container.
func (f *Forge) Pop(fr Frame) (Atom, error) {
	n := len(f.stack)
	if n == 0 || fr.depth != n || f.stack[n-1] != fr.off {
		return nil, fmt.Errorf("%w: frame at %d, depth %d of %d", ErrFrameMismatch, fr.off, fr.depth, n)
	}
	f.stack = f.stack[:n-1]
	return f.At(fr.off), nil
}
