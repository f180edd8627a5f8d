// Package dump renders atoms for people: as a plain Go tree that marshals to
// YAML, or as indented, optionally colored text.
package dump

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/rawbytedev/atom"
	"github.com/rawbytedev/atom/internal/common"
	"gopkg.in/yaml.v3"
)

// Namer turns URIDs back into URIs for display. Without an Unmapper every
// URID prints as a number.
type Namer struct {
	Types    atom.Types
	Unmapper atom.Unmapper
}

// Name returns the URI of id, or "#<id>" when it is unknown.
func (n Namer) Name(id atom.URID) string {
	if id == 0 {
		return "0"
	}
	if n.Unmapper != nil {
		if uri, ok := n.Unmapper.Unmap(id); ok {
			return uri
		}
	}
	return fmt.Sprintf("#%d", id)
}

// Tree converts a into maps, slices and scalars. a is trusted; run Check
// first on bytes read from outside. Objects become
// {id, otype, properties: [{key, value}]}, sequences {unit, events: [{time,
// body}]}; atoms of unknown type keep their body as hex.
func Tree(a atom.Atom, n Namer) any {
	if atom.IsNull(a) {
		return nil
	}
	ts := n.Types
	t := a.Type()
	switch {
	case t == 0:
		return rawTree(a, n)
	case t == ts.Int:
		return a.AsInt()
	case t == ts.Long:
		return a.AsLong()
	case t == ts.Float:
		return a.AsFloat()
	case t == ts.Double:
		return a.AsDouble()
	case t == ts.Bool:
		return a.AsBool()
	case t == ts.URID:
		return map[string]any{"urid": n.Name(a.AsURID())}
	case ts.IsString(t):
		return a.AsString()
	case t == ts.Literal:
		lit := a.AsLiteral()
		m := map[string]any{"text": lit.Text}
		if lit.Datatype != 0 {
			m["datatype"] = n.Name(lit.Datatype)
		}
		if lit.Lang != 0 {
			m["lang"] = n.Name(lit.Lang)
		}
		return m
	case t == ts.Chunk:
		return map[string]any{"chunk": hex.EncodeToString(a.Body())}
	case t == ts.Tuple:
		out := []any{}
		for child := range a.AsTuple().Atoms() {
			out = append(out, Tree(child, n))
		}
		return out
	case t == ts.Vector:
		vec := a.AsVector()
		elems := make([]any, 0, vec.Len())
		for i := range vec.Len() {
			elems = append(elems, Tree(vectorElem(vec, i), n))
		}
		return map[string]any{"vector": n.Name(vec.ChildType()), "elems": elems}
	case ts.IsObject(t):
		return objectTree(a.AsObject(), n)
	case t == ts.Sequence:
		return sequenceTree(a.AsSequence(), n)
	default:
		return rawTree(a, n)
	}
}

func rawTree(a atom.Atom, n Namer) map[string]any {
	return map[string]any{
		"type": n.Name(a.Type()),
		"size": a.Size(),
		"body": hex.EncodeToString(a.Body()),
	}
}

// vectorElem wraps a vector element body in a standalone atom.
func vectorElem(v atom.Vector, i int) atom.Atom {
	body := v.Elem(i)
	a := make(atom.Atom, atom.HeaderSize+len(body))
	common.PutU32(a, 0, uint32(len(body)))
	common.PutU32(a, 4, uint32(v.ChildType()))
	copy(a[atom.HeaderSize:], body)
	return a
}

func objectTree(o atom.Object, n Namer) map[string]any {
	props := []any{}
	for p := range o.Properties() {
		pm := map[string]any{"key": n.Name(p.Key()), "value": Tree(p.Value(), n)}
		if p.Context() != 0 {
			pm["context"] = n.Name(p.Context())
		}
		props = append(props, pm)
	}
	m := map[string]any{"otype": n.Name(o.OType()), "properties": props}
	if o.ID() != 0 {
		m["id"] = n.Name(o.ID())
	}
	return m
}

func sequenceTree(s atom.Sequence, n Namer) map[string]any {
	unit := s.TimeUnit(n.Types.Units)
	events := []any{}
	for e := range s.Events() {
		ts := e.Time(unit)
		var when any = ts.Raw()
		if b, ok := ts.Beats(); ok {
			when = b
		}
		events = append(events, map[string]any{"time": when, "body": Tree(e.Body(), n)})
	}
	return map[string]any{"unit": unit.String(), "events": events}
}

// YAML writes tree as a YAML document.
func YAML(w io.Writer, tree any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("encoding dump: %w", err)
	}
	return enc.Close()
}
