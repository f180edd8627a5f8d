package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rawbytedev/atom"
	"github.com/rawbytedev/atom/pkg/urid"
)

type Voice struct {
	Pitch    int32     `atom:"urn:profile:pitch"`
	Gain     float64   `atom:"urn:profile:gain"`
	Name     string    `atom:"urn:profile:name"`
	Envelope []float32 `atom:"urn:profile:envelope"`
}

func main() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()
	f, err := os.Create("mem.prof")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	runtime.MemProfileRate = 1

	m := urid.New()
	types := atom.NewTypes(m)
	codec := atom.NewCodec(m, types)
	otype := m.Map("urn:profile:Voice")
	v := Voice{Pitch: 64, Gain: 0.8, Name: "lead", Envelope: []float32{0, 1, 0.7, 0}}

	scratch := make([]byte, 256)
	forge := atom.NewForge(scratch, types)
	seqBuf := make([]byte, 4096)
	seq, err := atom.InitSequence(seqBuf, types.Sequence, types.Units.Frame)
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < 10000; i++ {
		forge.Reset(scratch)
		obj, err := codec.Encode(forge, 0, otype, v)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := seq.Append(seq.Cap(), atom.FrameStamp(int64(i)), obj.Atom()); err != nil {
			seq.Clear()
			continue
		}
		for ev := range seq.Events() {
			var out Voice
			codec.Decode(ev.Body().AsObject(), &out)
		}
	}
	pprof.WriteHeapProfile(f)
	time.Sleep(5 * time.Minute)
}
