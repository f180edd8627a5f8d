package common

import (
	"encoding/binary"
	"math"
	"reflect"
)

// fixedWidth holds the encoded width of each fixed-size kind; 0 marks the
// rest.
var fixedWidth = [...]uint8{
	reflect.Bool:    1,
	reflect.Int8:    1,
	reflect.Uint8:   1,
	reflect.Int16:   2,
	reflect.Uint16:  2,
	reflect.Int32:   4,
	reflect.Uint32:  4,
	reflect.Float32: 4,
	reflect.Int64:   8,
	reflect.Uint64:  8,
	reflect.Float64: 8,
}

// FixedSize returns the encoded width of k, or -1 for kinds without one.
func FixedSize(k reflect.Kind) int {
	if int(k) < len(fixedWidth) && fixedWidth[k] != 0 {
		return int(fixedWidth[k])
	}
	return -1
}

func IsFixedKind(k reflect.Kind) bool { return FixedSize(k) > 0 }

// U32 reads a little-endian uint32 at off.
func U32(b []byte, off uint32) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

// PutU32 writes v little-endian at off.
func PutU32(b []byte, off uint32, v uint32) {
	binary.LittleEndian.PutUint32(b[off:], v)
}

func U64(b []byte, off uint32) uint64 {
	return binary.LittleEndian.Uint64(b[off:])
}

func PutU64(b []byte, off uint32, v uint64) {
	binary.LittleEndian.PutUint64(b[off:], v)
}

func F32(b []byte, off uint32) float32 {
	return math.Float32frombits(U32(b, off))
}

func F64(b []byte, off uint32) float64 {
	return math.Float64frombits(U64(b, off))
}

// AppendFixed encodes a fixed-width value little-endian into dst using scratch.
func AppendFixed(dst []byte, v reflect.Value) []byte {
	var scratch [8]byte
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return append(dst, 1)
		}
		return append(dst, 0)
	case reflect.Int8:
		return append(dst, byte(v.Int()))
	case reflect.Uint8:
		return append(dst, byte(v.Uint()))
	case reflect.Int16:
		binary.LittleEndian.PutUint16(scratch[:], uint16(v.Int()))
		return append(dst, scratch[:2]...)
	case reflect.Uint16:
		binary.LittleEndian.PutUint16(scratch[:], uint16(v.Uint()))
		return append(dst, scratch[:2]...)
	case reflect.Int32:
		binary.LittleEndian.PutUint32(scratch[:], uint32(v.Int()))
		return append(dst, scratch[:4]...)
	case reflect.Uint32:
		binary.LittleEndian.PutUint32(scratch[:], uint32(v.Uint()))
		return append(dst, scratch[:4]...)
	case reflect.Int64:
		binary.LittleEndian.PutUint64(scratch[:], uint64(v.Int()))
		return append(dst, scratch[:8]...)
	case reflect.Uint64:
		binary.LittleEndian.PutUint64(scratch[:], v.Uint())
		return append(dst, scratch[:8]...)
	case reflect.Float32:
		binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(float32(v.Float())))
		return append(dst, scratch[:4]...)
	case reflect.Float64:
		binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(v.Float()))
		return append(dst, scratch[:8]...)
	default:
		panic("not fixed")
	}
}

func U16(b []byte, off uint32) uint16 {
	return binary.LittleEndian.Uint16(b[off:])
}

// SetFixed reads the fixed-width value of dst's kind at off and stores it.
func SetFixed(dst reflect.Value, b []byte, off uint32) {
	switch dst.Kind() {
	case reflect.Bool:
		dst.SetBool(b[off] != 0)
	case reflect.Int8:
		dst.SetInt(int64(int8(b[off])))
	case reflect.Uint8:
		dst.SetUint(uint64(b[off]))
	case reflect.Int16:
		dst.SetInt(int64(int16(U16(b, off))))
	case reflect.Uint16:
		dst.SetUint(uint64(U16(b, off)))
	case reflect.Int32:
		dst.SetInt(int64(int32(U32(b, off))))
	case reflect.Uint32:
		dst.SetUint(uint64(U32(b, off)))
	case reflect.Int64:
		dst.SetInt(int64(U64(b, off)))
	case reflect.Uint64:
		dst.SetUint(U64(b, off))
	case reflect.Float32:
		dst.SetFloat(float64(F32(b, off)))
	case reflect.Float64:
		dst.SetFloat(F64(b, off))
	}
}
