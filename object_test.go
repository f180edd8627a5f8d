package atom

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	keyA URID = 1001
	keyB URID = 1002
	keyC URID = 1003
)

// sampleObject forges {a: Int 1, b: Long 2, a: Int 3, c: String "hi"}.
func sampleObject(t *testing.T) (Object, Types) {
	t.Helper()
	_, types := testTypes()
	f := NewForge(make([]byte, 256), types)
	fr, err := f.BeginObject(0, 77)
	require.NoError(t, err)
	require.NoError(t, f.Key(keyA))
	_, err = f.Int(1)
	require.NoError(t, err)
	require.NoError(t, f.Key(keyB))
	_, err = f.Long(2)
	require.NoError(t, err)
	require.NoError(t, f.Key(keyA))
	_, err = f.Int(3)
	require.NoError(t, err)
	require.NoError(t, f.KeyContext(keyC, 5))
	_, err = f.Str("hi")
	require.NoError(t, err)
	a, err := f.Pop(fr)
	require.NoError(t, err)
	return a.AsObject(), types
}

func TestObjectIteration(t *testing.T) {
	obj, types := sampleObject(t)
	assert.Equal(t, URID(0), obj.ID())
	assert.Equal(t, URID(77), obj.OType())
	assert.Equal(t, types.Object, obj.Atom().Type())
	assert.Equal(t, 4, obj.Len())

	var keys []URID
	for p := range obj.Properties() {
		keys = append(keys, p.Key())
	}
	assert.Equal(t, []URID{keyA, keyB, keyA, keyC}, keys)

	it := obj.Begin()
	assert.Equal(t, uint32(ObjectBodySize), it.Offset())
	it = it.Next()
	assert.Equal(t, uint32(ObjectBodySize+24), it.Offset())
	assert.Equal(t, keyB, it.Property().Key())
	for ; !it.IsEnd(); it = it.Next() {
	}
	assert.Equal(t, obj.Atom().Size(), it.Offset())
	var last Property
	for p := range obj.Properties() {
		last = p
	}
	assert.Equal(t, keyC, last.Key())
	assert.Equal(t, URID(5), last.Context())
}

func TestQueryFirstMatchWins(t *testing.T) {
	obj, types := sampleObject(t)
	var a, b, c Atom
	n, err := obj.Query(
		QueryEntry{Key: keyA, Value: &a},
		QueryEntry{Key: keyB, Value: &b},
		QueryEntry{Key: keyC, Value: &c},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, int32(1), a.AsInt())
	assert.Equal(t, int64(2), b.AsLong())
	assert.Equal(t, types.String, c.Type())
	assert.Equal(t, "hi", c.AsString())
}

func TestQueryAbsentKey(t *testing.T) {
	obj, _ := sampleObject(t)
	stale := rawAtom(1, nil)
	missing := stale
	var b Atom
	n, err := obj.Query(QueryEntry{Key: 99, Value: &missing}, QueryEntry{Key: keyB, Value: &b})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Nil(t, missing)
	assert.Equal(t, int64(2), b.AsLong())

	v, ok := obj.Get(99)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestQueryEmptyObjectAndQuery(t *testing.T) {
	_, types := testTypes()
	f := NewForge(make([]byte, 16), types)
	fr, err := f.BeginObject(3, 4)
	require.NoError(t, err)
	a, err := f.Pop(fr)
	require.NoError(t, err)
	obj := a.AsObject()
	assert.True(t, obj.Begin().IsEnd())
	assert.Equal(t, 0, obj.Len())
	assert.Equal(t, URID(3), obj.ID())

	var v Atom
	n, err := obj.Query(QueryEntry{Key: keyA, Value: &v})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Nil(t, v)

	full, _ := sampleObject(t)
	n, err = full.Query()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestQueryRejectsMalformedEntries(t *testing.T) {
	obj, _ := sampleObject(t)
	var a, b Atom
	_, err := obj.Query(QueryEntry{Key: keyA, Value: &a}, QueryEntry{Key: keyB})
	require.ErrorIs(t, err, ErrInvalidQuery)

	a = rawAtom(1, nil)
	_, err = obj.Query(QueryEntry{Key: keyA, Value: &a}, QueryEntry{Key: keyA, Value: &b})
	require.ErrorIs(t, err, ErrInvalidQuery)
	assert.NotNil(t, a, "slots stay untouched on a rejected query")
}

func TestQueryValueMutatesInPlace(t *testing.T) {
	obj, _ := sampleObject(t)
	var b Atom
	_, err := obj.Query(QueryEntry{Key: keyB, Value: &b})
	require.NoError(t, err)
	b.SetLong(-40)

	v, ok := obj.Get(keyB)
	require.True(t, ok)
	assert.Equal(t, int64(-40), v.AsLong())
}

func TestObjectUnpaddedFinalProperty(t *testing.T) {
	_, types := testTypes()
	f := NewForge(make([]byte, 64), types)
	fr, err := f.BeginObject(0, 1)
	require.NoError(t, err)
	require.NoError(t, f.Key(keyA))
	_, err = f.Int(9)
	require.NoError(t, err)
	a, err := f.Pop(fr)
	require.NoError(t, err)
	require.Equal(t, uint32(ObjectBodySize+24), a.Size())

	// a producer that does not count the trailing padding
	a.setSize(ObjectBodySize + PropertyHeaderSize + 4)
	obj := a.AsObject()
	assert.Equal(t, 1, obj.Len())
	it := obj.Begin().Next()
	assert.True(t, it.IsEnd())
	assert.Greater(t, it.Offset(), a.Size())
	v, ok := obj.Get(keyA)
	require.True(t, ok)
	assert.Equal(t, int32(9), v.AsInt())
}

func TestObjectNested(t *testing.T) {
	_, types := testTypes()
	f := NewForge(make([]byte, 256), types)
	outer, err := f.BeginObject(0, 1)
	require.NoError(t, err)
	require.NoError(t, f.Key(keyA))
	inner, err := f.BeginObject(0, 2)
	require.NoError(t, err)
	require.NoError(t, f.Key(keyB))
	_, err = f.Double(2.5)
	require.NoError(t, err)
	_, err = f.Pop(inner)
	require.NoError(t, err)
	require.NoError(t, f.Key(keyC))
	_, err = f.Int(4)
	require.NoError(t, err)
	a, err := f.Pop(outer)
	require.NoError(t, err)
	assert.Equal(t, uint32(f.Len()-HeaderSize), a.Size())

	obj := a.AsObject()
	assert.Equal(t, 2, obj.Len())
	in, ok := obj.Get(keyA)
	require.True(t, ok)
	require.True(t, types.IsObject(in.Type()))
	d, ok := in.AsObject().Get(keyB)
	require.True(t, ok)
	assert.Equal(t, 2.5, d.AsDouble())
	c, ok := obj.Get(keyC)
	require.True(t, ok)
	assert.Equal(t, int32(4), c.AsInt())
}

func TestQueryStopsWhenAllFilled(t *testing.T) {
	_, types := testTypes()
	f := NewForge(make([]byte, 64), types)
	fr, err := f.BeginObject(0, 1)
	require.NoError(t, err)
	require.NoError(t, f.Key(keyA))
	_, err = f.Int(1)
	require.NoError(t, err)
	require.NoError(t, f.Key(keyB))
	_, err = f.Long(2)
	require.NoError(t, err)
	a, err := f.Pop(fr)
	require.NoError(t, err)

	// claim a third property that lies past the end of the slice
	obj := Atom(bytes.Clone(a[:TotalSize(a)]))
	obj.setSize(obj.Size() + 64)
	require.Panics(t, func() { obj.AsObject().Len() }, "visiting past the filled keys reads out of bounds")

	var x, y Atom
	var n int
	require.NotPanics(t, func() {
		n, err = obj.AsObject().Query(QueryEntry{Key: keyB, Value: &y}, QueryEntry{Key: keyA, Value: &x})
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int32(1), x.AsInt())
	assert.Equal(t, int64(2), y.AsLong())
}
