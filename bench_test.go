package atom

import (
	"testing"
)

func BenchmarkQuery(b *testing.B) {
	_, types := testTypes()
	f := NewForge(make([]byte, 512), types)
	fr, _ := f.BeginObject(0, 1)
	for k := URID(1); k <= 8; k++ {
		_ = f.Key(k)
		_, _ = f.Long(int64(k))
	}
	a, _ := f.Pop(fr)
	obj := a.AsObject()
	var x, y, z Atom
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = obj.Query(
			QueryEntry{Key: 2, Value: &x},
			QueryEntry{Key: 5, Value: &y},
			QueryEntry{Key: 8, Value: &z},
		)
	}
}

func BenchmarkSequenceAppendIterate(b *testing.B) {
	seq, _ := InitSequence(make([]byte, 4096), 20, 0)
	body := rawAtom(7, u64Body(1))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		seq.Clear()
		for j := 0; j < 64; j++ {
			_, _ = seq.Append(seq.Cap(), FrameStamp(int64(j)), body)
		}
		var sum int64
		for it := seq.Begin(); !it.IsEnd(); it = it.Next() {
			sum += it.Event().Body().AsLong()
		}
		_ = sum
	}
}

func BenchmarkForgeObject(b *testing.B) {
	_, types := testTypes()
	buf := make([]byte, 256)
	f := NewForge(buf, types)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		f.Reset(buf)
		fr, _ := f.BeginObject(0, 1)
		_ = f.Key(2)
		_, _ = f.Float(0.5)
		_ = f.Key(3)
		_, _ = f.Str("name")
		_, _ = f.Pop(fr)
	}
}

func BenchmarkCodecEncode(b *testing.B) {
	c := newTestCodec()
	v := Voice{Pitch: 60, Name: "lead", Steps: []int32{1, 2, 3}, Envelope: []float64{0, 1}}
	buf := make([]byte, 1024)
	f := NewForge(buf, c.Types)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		f.Reset(buf)
		_, _ = c.Encode(f, 0, 1, v)
	}
}

func BenchmarkCodecDecode(b *testing.B) {
	c := newTestCodec()
	v := Voice{Pitch: 60, Name: "lead", Steps: []int32{1, 2, 3}, Envelope: []float64{0, 1}}
	f := NewForge(make([]byte, 1024), c.Types)
	obj, _ := c.Encode(f, 0, 1, v)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var out Voice
		_, _ = c.Decode(obj, &out)
	}
}
