package atom

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadSize(t *testing.T) {
	for n, want := range map[uint32]uint32{0: 0, 1: 8, 7: 8, 8: 8, 9: 16, 20: 24, 28: 32} {
		assert.Equal(t, want, PadSize(n), "PadSize(%d)", n)
	}
	condition := func(n uint32) bool {
		n >>= 1
		p := PadSize(n)
		return p%8 == 0 && p >= n && p-n < 8 && PadSize(p) == p
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestView(t *testing.T) {
	_, err := View(make([]byte, 7))
	require.ErrorIs(t, err, ErrShortBuffer)

	a := rawAtom(3, []byte{1, 2, 3, 4, 5})
	_, err = View(a[:12])
	require.ErrorIs(t, err, ErrShortBuffer)

	v, err := View(a)
	require.NoError(t, err)
	assert.Len(t, v, 13)
	assert.Equal(t, Header{Size: 5, Type: 3}, v.Header())
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, v.Body())
	assert.Equal(t, uint32(13), TotalSize(v))
}

func TestIsNullAndEquals(t *testing.T) {
	assert.True(t, IsNull(nil))
	assert.True(t, IsNull(make(Atom, 8)))
	assert.False(t, IsNull(rawAtom(1, nil)))

	a := rawAtom(5, u64Body(42))
	b := rawAtom(5, u64Body(42))
	assert.True(t, Equals(a, a))
	assert.True(t, Equals(a, b))
	assert.True(t, Equals(nil, make(Atom, 8)))
	assert.False(t, Equals(a, nil))
	assert.False(t, Equals(a, rawAtom(6, u64Body(42))))
	assert.False(t, Equals(a, rawAtom(5, u64Body(43))))
	assert.False(t, Equals(a, rawAtom(5, []byte{42})))

	// padding is not compared
	c := rawAtom(5, []byte{9})
	d := rawAtom(5, []byte{9})
	d[HeaderSize+1] = 0xff
	assert.True(t, Equals(c, d))
}

func TestScalars(t *testing.T) {
	_, types := testTypes()
	f := NewForge(make([]byte, 128), types)

	i, err := f.Int(-7)
	require.NoError(t, err)
	assert.Equal(t, int32(-7), i.AsInt())
	i.SetInt(12)
	assert.Equal(t, int32(12), i.AsInt())

	l, err := f.Long(1 << 40)
	require.NoError(t, err)
	l.SetLong(l.AsLong() + 1)
	assert.Equal(t, int64(1<<40+1), l.AsLong())

	fl, err := f.Float(1.5)
	require.NoError(t, err)
	fl.SetFloat(fl.AsFloat() * 2)
	assert.Equal(t, float32(3), fl.AsFloat())

	d, err := f.Double(0.125)
	require.NoError(t, err)
	d.SetDouble(-d.AsDouble())
	assert.Equal(t, -0.125, d.AsDouble())

	bl, err := f.Bool(true)
	require.NoError(t, err)
	assert.True(t, bl.AsBool())
	bl.SetBool(false)
	assert.False(t, bl.AsBool())

	u, err := f.URID(types.Int)
	require.NoError(t, err)
	assert.Equal(t, types.Int, u.AsURID())
	u.SetURID(types.Long)
	assert.Equal(t, types.Long, u.AsURID())

	// neighbours are untouched by the setters
	assert.Equal(t, int32(12), i.AsInt())
	assert.Equal(t, types.Bool, bl.Type())
}
