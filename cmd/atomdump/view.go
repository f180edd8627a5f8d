package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rawbytedev/atom"
	"github.com/rawbytedev/atom/pkg/dump"
	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	m, err := cfg.registry()
	if err != nil {
		return err
	}
	n := dump.Namer{Types: atom.NewTypes(m), Unmapper: m}
	var key atom.URID
	if cfg.Key != "" {
		key = m.Map(cfg.Key)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := viewArg(cfg, cc.Out, arg, n, key); err != nil {
			return fmt.Errorf("error viewing %s: %w", arg, err)
		}
	}
	return nil
}

func viewArg(cfg *ViewConfig, w io.Writer, arg string, n dump.Namer, key atom.URID) error {
	var data []byte
	var err error
	if arg == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(arg)
	}
	if err != nil {
		return err
	}
	for off := 0; off < len(data); {
		a, err := atom.View(data[off:])
		if err != nil {
			return fmt.Errorf("offset %d: %w", off, err)
		}
		if err := dump.Check(a, n.Types); err != nil {
			return fmt.Errorf("offset %d: %w", off, err)
		}
		theLog.Debug("atom", "offset", off, "type", n.Name(a.Type()), "size", a.Size())
		off += int(atom.PadSize(atom.TotalSize(a)))

		if key != 0 {
			if !n.Types.IsObject(a.Type()) {
				continue
			}
			v, ok := a.AsObject().Get(key)
			if !ok {
				continue
			}
			a = v
		}
		if err := cfg.write(w, a, n); err != nil {
			return err
		}
	}
	return nil
}
