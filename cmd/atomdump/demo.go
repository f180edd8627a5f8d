package main

import (
	"fmt"
	"os"

	"github.com/rawbytedev/atom"
	"github.com/scott-cotton/cli"
)

const (
	notePitch    = "urn:atomdump:pitch"
	noteVelocity = "urn:atomdump:velocity"
	noteType     = "urn:atomdump:Note"
)

func demo(cfg *DemoConfig, cc *cli.Context, args []string) error {
	_, err := cfg.Demo.Parse(cc, args)
	if err != nil {
		cfg.Demo.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Events < 0 {
		return fmt.Errorf("%w: -n must not be negative", cli.ErrUsage)
	}
	m, err := cfg.registry()
	if err != nil {
		return err
	}
	types := atom.NewTypes(m)
	pitch, velocity, otype := m.Map(notePitch), m.Map(noteVelocity), m.Map(noteType)

	unit := atom.FrameTime
	if cfg.Beats {
		unit = atom.BeatTime
	}
	// a note object is 64 bytes, its event adds the 8 byte stamp
	buf := make([]byte, atom.HeaderSize+atom.SequenceBodySize+cfg.Events*72)
	seq, err := atom.InitSequence(buf, types.Sequence, types.Units.URID(unit))
	if err != nil {
		return err
	}

	scratch := make([]byte, 64)
	f := atom.NewForge(scratch, types)
	for i := range cfg.Events {
		f.Reset(scratch)
		fr, err := f.BeginObject(0, otype)
		if err != nil {
			return err
		}
		if err := f.Key(pitch); err != nil {
			return err
		}
		if _, err := f.Int(int32(60 + i)); err != nil {
			return err
		}
		if err := f.Key(velocity); err != nil {
			return err
		}
		if _, err := f.Float(float32(i+1) / float32(cfg.Events)); err != nil {
			return err
		}
		note, err := f.Pop(fr)
		if err != nil {
			return err
		}
		stamp := atom.FrameStamp(int64(i) * 480)
		if unit == atom.BeatTime {
			stamp = atom.BeatStamp(float64(i) / 2)
		}
		if _, err := seq.Append(seq.Cap(), stamp, note); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	theLog.Debug("forged sequence", "events", seq.Len(), "size", seq.Atom().Size())

	out := buf[:atom.PadSize(atom.TotalSize(seq.Atom()))]
	if cfg.Out == "" || cfg.Out == "-" {
		if _, err := cc.Out.Write(out); err != nil {
			return err
		}
	} else if err := os.WriteFile(cfg.Out, out, 0644); err != nil {
		return err
	}
	return cfg.saveRegistry(m)
}
