package atom

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/rawbytedev/atom/internal/common"
)

var (
	ErrShortBuffer   = errors.New("buffer shorter than declared atom")
	ErrNoSpace       = errors.New("not enough space")
	ErrInvalidQuery  = errors.New("invalid query")
	ErrFrameMismatch = errors.New("frame is not the innermost open container")
	ErrNotStruct     = errors.New("expected struct")
	ErrNotStructPtr  = errors.New("expected pointer to struct")
	ErrUnsupported   = errors.New("unsupported type")
	ErrTypeMismatch  = errors.New("atom type mismatch")
)

// Fixed layout widths, in bytes.
const (
	HeaderSize         = 8  // size:u32 type:u32
	ObjectBodySize     = 8  // id:u32 otype:u32
	SequenceBodySize   = 8  // unit:u32 pad:u32
	VectorBodySize     = 8  // child_size:u32 child_type:u32
	LiteralBodySize    = 8  // datatype:u32 lang:u32
	PropertyHeaderSize = 16 // key:u32 context:u32 value header
	EventHeaderSize    = 16 // time:i64 body header
)

// URID is an integer standing in for a URI, assigned by a Mapper.
type URID uint32

// Mapper maps URIs to URIDs. Implementations must return the same URID for
// the same URI for the lifetime of the process.
type Mapper interface {
	Map(uri string) URID
}

// Unmapper resolves a URID back to its URI.
type Unmapper interface {
	Unmap(id URID) (string, bool)
}

// Header is a decoded atom header.
type Header struct {
	Size uint32 // body length, header excluded, never padded
	Type URID
}

// PadSize rounds n up to the next multiple of 8.
func PadSize(n uint32) uint32 {
	return (n + 7) &^ 7
}

// Atom is a view over an atom that starts at the first byte of the slice.
// The slice may extend past the atom; only Size bytes of body are meaningful.
type Atom []byte

// View checks that buf holds a complete atom header and body and returns it
// as an Atom trimmed to its total size.
func View(buf []byte) (Atom, error) {
	if len(buf) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrShortBuffer, len(buf), HeaderSize)
	}
	a := Atom(buf)
	total := uint64(HeaderSize) + uint64(a.Size())
	if uint64(len(buf)) < total {
		return nil, fmt.Errorf("%w: %d bytes, atom needs %d", ErrShortBuffer, len(buf), total)
	}
	return a[:total], nil
}

// Size returns the body size of the atom.
func (a Atom) Size() uint32 { return common.U32(a, 0) }

// Type returns the type URID of the atom.
func (a Atom) Type() URID { return URID(common.U32(a, 4)) }

func (a Atom) Header() Header { return Header{Size: a.Size(), Type: a.Type()} }

// Body returns the meaningful body bytes, without padding.
func (a Atom) Body() []byte { return a[HeaderSize : HeaderSize+a.Size()] }

// Bytes returns the header and body, without padding.
func (a Atom) Bytes() []byte { return a[:TotalSize(a)] }

func (a Atom) setSize(n uint32) { common.PutU32(a, 0, n) }

// TotalSize returns the header width plus the unpadded body size.
func TotalSize(a Atom) uint32 {
	return HeaderSize + a.Size()
}

// IsNull reports whether a is absent or the zero atom (type and size both 0).
func IsNull(a Atom) bool {
	return len(a) < HeaderSize || (a.Type() == 0 && a.Size() == 0)
}

// Equals reports whether a and b are the same view, or have the same type,
// the same size and byte-identical bodies. Containers are compared as raw
// bytes.
func Equals(a, b Atom) bool {
	if len(a) >= HeaderSize && len(a) == len(b) && &a[0] == &b[0] {
		return true
	}
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	return a.Type() == b.Type() && a.Size() == b.Size() && bytes.Equal(a.Body(), b.Body())
}

func (a Atom) AsInt() int32        { return int32(common.U32(a, HeaderSize)) }
func (a Atom) SetInt(v int32)      { common.PutU32(a, HeaderSize, uint32(v)) }
func (a Atom) AsLong() int64       { return int64(common.U64(a, HeaderSize)) }
func (a Atom) SetLong(v int64)     { common.PutU64(a, HeaderSize, uint64(v)) }
func (a Atom) AsFloat() float32    { return common.F32(a, HeaderSize) }
func (a Atom) SetFloat(v float32)  { common.PutU32(a, HeaderSize, math.Float32bits(v)) }
func (a Atom) AsDouble() float64   { return common.F64(a, HeaderSize) }
func (a Atom) SetDouble(v float64) { common.PutU64(a, HeaderSize, math.Float64bits(v)) }
func (a Atom) AsURID() URID        { return URID(common.U32(a, HeaderSize)) }
func (a Atom) SetURID(v URID)      { common.PutU32(a, HeaderSize, uint32(v)) }

// AsBool reads an atom:Bool, which shares the atom:Int layout.
func (a Atom) AsBool() bool { return a.AsInt() != 0 }

func (a Atom) SetBool(v bool) {
	if v {
		a.SetInt(1)
		return
	}
	a.SetInt(0)
}

// AsString returns the body of an atom:String (or Path, URI) up to the
// terminating NUL.
func (a Atom) AsString() string {
	return cstring(a.Body())
}

func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
