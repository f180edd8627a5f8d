package dump

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/rawbytedev/atom"
)

// Colors holds the printf-style functions used to highlight each part of a
// text dump.
type Colors struct {
	Type  func(string, ...any) string
	Key   func(string, ...any) string
	Value func(string, ...any) string
	Time  func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Type:  color.RGB(74, 92, 138).SprintfFunc(),
		Key:   color.RGB(196, 96, 16).SprintfFunc(),
		Value: color.RGB(128, 216, 236).SprintfFunc(),
		Time:  color.CyanString,
	}
}

func plain(f string, args ...any) string { return fmt.Sprintf(f, args...) }

var noColors = &Colors{Type: plain, Key: plain, Value: plain, Time: plain}

type printer struct {
	w   io.Writer
	n   Namer
	c   *Colors
	err error
}

func (p *printer) line(depth int, f string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(f, args...))
}

// Text writes a as indented text, one atom per line. colors may be nil for
// plain output. Nothing is written when a fails Check.
func Text(w io.Writer, a atom.Atom, n Namer, colors *Colors) error {
	if err := Check(a, n.Types); err != nil {
		return err
	}
	if colors == nil {
		colors = noColors
	}
	p := &printer{w: w, n: n, c: colors}
	p.atom(0, "", a)
	return p.err
}

func (p *printer) short(t atom.URID) string {
	name := p.n.Name(t)
	if i := strings.LastIndexAny(name, "#/"); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	return p.c.Type("%s", name)
}

func (p *printer) atom(depth int, prefix string, a atom.Atom) {
	if atom.IsNull(a) {
		p.line(depth, "%s%s", prefix, p.c.Value("null"))
		return
	}
	ts := p.n.Types
	t := a.Type()
	switch {
	case t == 0:
		p.leaf(depth, prefix, a)
	case ts.IsObject(t):
		o := a.AsObject()
		p.line(depth, "%s%s %s id=%s", prefix, p.short(t), p.c.Type("%s", p.n.Name(o.OType())), p.n.Name(o.ID()))
		for prop := range o.Properties() {
			p.atom(depth+1, p.c.Key("%s", p.n.Name(prop.Key()))+": ", prop.Value())
		}
	case t == ts.Tuple:
		p.line(depth, "%s%s", prefix, p.short(t))
		for child := range a.AsTuple().Atoms() {
			p.atom(depth+1, "- ", child)
		}
	case t == ts.Sequence:
		s := a.AsSequence()
		unit := s.TimeUnit(ts.Units)
		p.line(depth, "%s%s (%s)", prefix, p.short(t), unit)
		for e := range s.Events() {
			p.atom(depth+1, p.c.Time("@%s", e.Time(unit))+" ", e.Body())
		}
	case t == ts.Vector:
		vec := a.AsVector()
		parts := make([]string, 0, vec.Len())
		for i := range vec.Len() {
			parts = append(parts, fmt.Sprint(Tree(vectorElem(vec, i), p.n)))
		}
		p.line(depth, "%s%s<%s> [%s]", prefix, p.short(t), p.short(vec.ChildType()), p.c.Value("%s", strings.Join(parts, " ")))
	default:
		p.leaf(depth, prefix, a)
	}
}

func (p *printer) leaf(depth int, prefix string, a atom.Atom) {
	p.line(depth, "%s%s %s", prefix, p.short(a.Type()), p.c.Value("%v", scalar(Tree(a, p.n))))
}

// scalar flattens the single-entry maps Tree uses for tagged scalars and
// quotes strings.
func scalar(v any) any {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case map[string]any:
		if len(x) == 1 {
			for _, k := range []string{"urid", "chunk"} {
				if y, ok := x[k]; ok {
					return y
				}
			}
		}
	}
	return v
}
