package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rawbytedev/atom"
	"github.com/rawbytedev/atom/pkg/dump"
	"github.com/rawbytedev/atom/pkg/urid"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Map   string `cli:"name=map desc='urid registry snapshot (yaml)'"`
	Y     bool   `cli:"name=y aliases=yaml desc='output yaml instead of text'"`
	Color bool   `cli:"name=color desc='highlight text output'"`
	Debug bool   `cli:"name=debug desc='log registry activity'"`

	Main *cli.Command
}

type ViewConfig struct {
	*MainConfig
	Key string `cli:"name=key desc='only show this property of each object'"`

	View *cli.Command
}

type DemoConfig struct {
	*MainConfig
	Out    string `cli:"name=o desc='output file (default stdout)'"`
	Events int    `cli:"name=n desc='number of events to write'"`
	Beats  bool   `cli:"name=beats desc='stamp events in beats'"`

	Demo *cli.Command
}

// registry opens the -map snapshot, or a fresh map when none is given or
// the file does not exist yet.
func (cfg *MainConfig) registry() (*urid.Map, error) {
	var opts []urid.Option
	if cfg.Debug {
		opts = append(opts, urid.WithLogger(theLog))
	}
	if cfg.Map == "" {
		return urid.New(opts...), nil
	}
	f, err := os.Open(cfg.Map)
	if errors.Is(err, os.ErrNotExist) {
		theLog.Debug("no registry yet", "path", cfg.Map)
		return urid.New(opts...), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := urid.Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", cfg.Map, err)
	}
	return m, nil
}

func (cfg *MainConfig) saveRegistry(m *urid.Map) error {
	if cfg.Map == "" {
		return nil
	}
	f, err := os.OpenFile(cfg.Map, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := m.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// colors returns nil unless -color was given or w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) *dump.Colors {
	if cfg.Color {
		color.NoColor = false
		return dump.NewColors()
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return dump.NewColors()
	}
	return nil
}

func (cfg *MainConfig) write(w io.Writer, a atom.Atom, n dump.Namer) error {
	if cfg.Y {
		return dump.YAML(w, dump.Tree(a, n))
	}
	return dump.Text(w, a, n, cfg.colors(w))
}
