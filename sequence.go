package atom

import (
	"fmt"
	"iter"

	"github.com/rawbytedev/atom/internal/common"
)

// Sequence is a view over an atom:Sequence. The slice is the caller's buffer
// from the sequence header on; its length is the hard limit for appends.
// Events follow the {unit, pad} body prefix, each padded to 8 bytes.
//
// A Sequence must have a single writer. Append and Clear must not run while
// another goroutine walks the same buffer.
type Sequence Atom

func (a Atom) AsSequence() Sequence { return Sequence(a) }

// InitSequence writes an empty sequence header at the start of buf.
func InitSequence(buf []byte, typ, unit URID) (Sequence, error) {
	if len(buf) < HeaderSize+SequenceBodySize {
		return nil, fmt.Errorf("%w: sequence header needs %d bytes, have %d",
			ErrShortBuffer, HeaderSize+SequenceBodySize, len(buf))
	}
	common.PutU32(buf, 0, SequenceBodySize)
	common.PutU32(buf, 4, uint32(typ))
	common.PutU32(buf, HeaderSize, uint32(unit))
	common.PutU32(buf, HeaderSize+4, 0)
	return Sequence(buf), nil
}

func (s Sequence) Atom() Atom { return Atom(s) }

// Unit returns the URID of the time stamp unit, 0 for the default.
func (s Sequence) Unit() URID { return URID(common.U32(s, HeaderSize)) }

// TimeUnit resolves Unit through m.
func (s Sequence) TimeUnit(m UnitMap) TimeUnit {
	u, _ := m.Resolve(s.Unit())
	return u
}

// Cap returns the body capacity offered by the underlying buffer, 0 when
// the buffer cannot even hold a header.
func (s Sequence) Cap() uint32 {
	if len(s) < HeaderSize {
		return 0
	}
	return uint32(len(s) - HeaderSize)
}

// Event is a view over an event: a 64-bit stamp and a body atom. It is not
// an atom itself.
type Event []byte

// RawTime returns the stamp bits. Their meaning depends on the sequence unit.
func (e Event) RawTime() int64 { return int64(common.U64(e, 0)) }

// Time reads the stamp in the unit of the owning sequence.
func (e Event) Time(unit TimeUnit) Timestamp { return StampOf(e.RawTime(), unit) }

func (e Event) Body() Atom { return Atom(e[8:]) }

// TotalSize is the stamp, body header and unpadded body.
func (e Event) TotalSize() uint32 { return EventHeaderSize + e.Body().Size() }

// Bytes returns the event without trailing padding.
func (e Event) Bytes() []byte { return e[:e.TotalSize()] }

// stride pads only the body: the event header is already 8-aligned.
func (e Event) stride() uint32 {
	return EventHeaderSize + PadSize(e.Body().Size())
}

// EventIter is a cursor over a sequence's events. Positions are body offsets.
type EventIter struct {
	seq Sequence
	pos uint32
}

// Begin returns a cursor on the first event, right after {unit, pad}.
func (s Sequence) Begin() EventIter {
	return EventIter{seq: s, pos: SequenceBodySize}
}

// IsEnd compares the cursor with the unpadded declared size.
func (it EventIter) IsEnd() bool {
	return it.pos >= Atom(it.seq).Size()
}

func (it EventIter) Next() EventIter {
	it.pos += it.Event().stride()
	return it
}

func (it EventIter) Offset() uint32 { return it.pos }

func (it EventIter) Event() Event {
	return Event(it.seq[HeaderSize+it.pos:])
}

// ForEach calls fn for every event in stored order until fn returns true.
func (s Sequence) ForEach(fn func(Event) (stop bool)) {
	for it := s.Begin(); !it.IsEnd(); it = it.Next() {
		if fn(it.Event()) {
			return
		}
	}
}

// Events yields events in stored order. Stamps are not checked for order.
func (s Sequence) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		s.ForEach(func(e Event) bool { return !yield(e) })
	}
}

func (s Sequence) Len() int {
	n := 0
	s.ForEach(func(Event) bool { n++; return false })
	return n
}

// end is the buffer offset where the next event will be written.
func (s Sequence) end() uint32 {
	return HeaderSize + PadSize(Atom(s).Size())
}

// remaining is capacity minus the current body size, floored at 0.
func (s Sequence) remaining(capacity uint32) uint32 {
	size := Atom(s).Size()
	if size >= capacity {
		return 0
	}
	return capacity - size
}

func (s Sequence) reserve(capacity, total uint32) (uint32, error) {
	if s.remaining(capacity) < total {
		return 0, fmt.Errorf("%w: event needs %d bytes, %d of %d left",
			ErrNoSpace, total, s.remaining(capacity), capacity)
	}
	// the declared size grows by the padded event, which must stay in buf
	e := s.end()
	if uint64(e)+uint64(PadSize(total)) > uint64(len(s)) {
		return 0, fmt.Errorf("%w: event needs %d bytes past offset %d, buffer holds %d",
			ErrNoSpace, PadSize(total), e, len(s))
	}
	return e, nil
}

// Append writes an event carrying a copy of body after the last event.
// capacity is the body capacity of the sequence (bytes after its atom
// header). Nothing is written when the event does not fit; the error wraps
// ErrNoSpace.
func (s Sequence) Append(capacity uint32, t Timestamp, body Atom) (Event, error) {
	total := EventHeaderSize + body.Size()
	e, err := s.reserve(capacity, total)
	if err != nil {
		return nil, err
	}
	common.PutU64(s, e, uint64(t.Raw()))
	copy(s[e+8:e+total], body.Bytes())
	Atom(s).setSize(Atom(s).Size() + PadSize(total))
	return Event(s[e:]), nil
}

// AppendEvent copies a complete event after the last event. See Append.
func (s Sequence) AppendEvent(capacity uint32, ev Event) (Event, error) {
	total := ev.TotalSize()
	e, err := s.reserve(capacity, total)
	if err != nil {
		return nil, err
	}
	copy(s[e:e+total], ev[:total])
	Atom(s).setSize(Atom(s).Size() + PadSize(total))
	return Event(s[e:]), nil
}

// Clear drops every event by resetting the size to the empty body. Stale
// bytes stay in the buffer and are overwritten by later appends.
func (s Sequence) Clear() {
	Atom(s).setSize(SequenceBodySize)
}
