package atom

import (
	"fmt"
	"math"
)

// TimeUnit says how an event's 64-bit time stamp is to be read.
type TimeUnit uint8

const (
	// FrameTime stamps are integer audio frame counts. It is the default for a
	// sequence whose unit is 0.
	FrameTime TimeUnit = iota
	// BeatTime stamps are IEEE-754 doubles counting beats.
	BeatTime
)

func (u TimeUnit) String() string {
	switch u {
	case FrameTime:
		return "frames"
	case BeatTime:
		return "beats"
	default:
		return fmt.Sprintf("TimeUnit(%d)", uint8(u))
	}
}

// UnitMap holds the mapped URIDs of atom:frameTime and atom:beatTime.
type UnitMap struct {
	Frame URID
	Beat  URID
}

// Resolve turns a sequence unit URID into a TimeUnit. The second result is
// false for a unit that is neither 0, Frame nor Beat; FrameTime is returned
// in that case.
func (m UnitMap) Resolve(unit URID) (TimeUnit, bool) {
	switch {
	case unit == 0:
		return FrameTime, true
	case m.Beat != 0 && unit == m.Beat:
		return BeatTime, true
	case m.Frame != 0 && unit == m.Frame:
		return FrameTime, true
	default:
		return FrameTime, false
	}
}

// URID returns the unit URID to store in a sequence header for u.
func (m UnitMap) URID(u TimeUnit) URID {
	if u == BeatTime {
		return m.Beat
	}
	return m.Frame
}

// Timestamp is a raw 64-bit event time paired with the unit it is read in.
type Timestamp struct {
	raw  int64
	unit TimeUnit
}

func FrameStamp(frames int64) Timestamp {
	return Timestamp{raw: frames, unit: FrameTime}
}

func BeatStamp(beats float64) Timestamp {
	return Timestamp{raw: int64(math.Float64bits(beats)), unit: BeatTime}
}

// StampOf pairs raw stamp bits with the unit of the sequence that owns them.
func StampOf(raw int64, unit TimeUnit) Timestamp {
	return Timestamp{raw: raw, unit: unit}
}

func (t Timestamp) Raw() int64     { return t.raw }
func (t Timestamp) Unit() TimeUnit { return t.unit }

// Frames returns the stamp as a frame count. ok is false for beat stamps.
func (t Timestamp) Frames() (frames int64, ok bool) {
	if t.unit != FrameTime {
		return 0, false
	}
	return t.raw, true
}

// Beats returns the stamp as a beat count. ok is false for frame stamps.
func (t Timestamp) Beats() (beats float64, ok bool) {
	if t.unit != BeatTime {
		return 0, false
	}
	return math.Float64frombits(uint64(t.raw)), true
}

func (t Timestamp) String() string {
	if b, ok := t.Beats(); ok {
		return fmt.Sprintf("%gb", b)
	}
	return fmt.Sprintf("%df", t.raw)
}
