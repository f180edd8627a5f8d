package atom

import (
	"bytes"
	"fmt"
	"reflect"
	"sync"

	"github.com/rawbytedev/atom/internal/common"
)

// Codec converts between tagged Go structs and atom:Object properties.
// Fields are bound with a tag holding the property URI:
//
//	type Note struct {
//		Pitch    int32   `atom:"http://example.org/pitch"`
//		Velocity float32 `atom:"http://example.org/velocity"`
//	}
//
// Untagged and unexported fields are skipped. A Codec is safe for concurrent
// use; struct plans are built once per type.
type Codec struct {
	Types  Types
	mapper Mapper
	plan   map[reflect.Type]*objectPlan
	mu     sync.RWMutex
}

type objectPlan struct {
	fields []propField
}

type propField struct {
	idx  int
	name string
	key  URID
	kind reflect.Kind
	elem reflect.Kind // slices only
	typ  URID         // atom type written and expected
}

func NewCodec(m Mapper, types Types) *Codec {
	return &Codec{
		Types:  types,
		mapper: m,
		plan:   make(map[reflect.Type]*objectPlan),
	}
}

func (c *Codec) getPlan(t reflect.Type) (*objectPlan, error) {
	c.mu.RLock()
	if plan, ok := c.plan[t]; ok {
		c.mu.RUnlock()
		return plan, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check
	if plan, ok := c.plan[t]; ok {
		return plan, nil
	}

	plan := &objectPlan{}
	seen := make(map[URID]string)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue // skip unexported
		}
		uri, ok := sf.Tag.Lookup("atom")
		if !ok || uri == "" || uri == "-" {
			continue
		}
		pf := propField{idx: i, name: sf.Name, kind: sf.Type.Kind(), key: c.mapper.Map(uri)}
		if pf.kind == reflect.Slice {
			pf.elem = sf.Type.Elem().Kind()
		}
		typ, err := c.atomType(pf.kind, pf.elem)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t.Name(), sf.Name, err)
		}
		pf.typ = typ
		if prev, dup := seen[pf.key]; dup {
			return nil, fmt.Errorf("fields %s and %s share key %q: %w", prev, sf.Name, uri, ErrUnsupported)
		}
		seen[pf.key] = sf.Name
		plan.fields = append(plan.fields, pf)
	}
	c.plan[t] = plan
	return plan, nil
}

// atomType picks the atom type for a field kind. Slices of fixed numeric
// kinds become vectors, []byte becomes a chunk.
func (c *Codec) atomType(k, elem reflect.Kind) (URID, error) {
	switch k {
	case reflect.Bool:
		return c.Types.Bool, nil
	case reflect.Int32:
		return c.Types.Int, nil
	case reflect.Int, reflect.Int64:
		return c.Types.Long, nil
	case reflect.Float32:
		return c.Types.Float, nil
	case reflect.Float64:
		return c.Types.Double, nil
	case reflect.Uint32:
		return c.Types.URID, nil
	case reflect.String:
		return c.Types.String, nil
	case reflect.Slice:
		if elem == reflect.Uint8 {
			return c.Types.Chunk, nil
		}
		if _, err := c.atomType(elem, reflect.Invalid); err != nil || !common.IsFixedKind(elem) || elem == reflect.Bool {
			return 0, fmt.Errorf("%w: slice of %s", ErrUnsupported, elem)
		}
		return c.Types.Vector, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupported, k)
	}
}

// Encode writes val, a struct or pointer to struct, as an object with the
// given subject and type. On failure the forge is left as it was before the
// call.
func (c *Codec) Encode(f *Forge, id, otype URID, val any) (Object, error) {
	v := reflect.ValueOf(val)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	plan, err := c.getPlan(v.Type())
	if err != nil {
		return nil, err
	}

	frame, err := f.BeginObject(id, otype)
	if err != nil {
		return nil, err
	}
	for _, field := range plan.fields {
		if err := f.Key(field.key); err != nil {
			f.abort(frame)
			return nil, err
		}
		if err := c.encodeField(f, field, v.Field(field.idx)); err != nil {
			f.abort(frame)
			return nil, fmt.Errorf("field %s: %w", field.name, err)
		}
	}
	obj, err := f.Pop(frame)
	if err != nil {
		return nil, err
	}
	return obj.AsObject(), nil
}

func (c *Codec) encodeField(f *Forge, field propField, fv reflect.Value) error {
	var err error
	switch field.kind {
	case reflect.Bool:
		_, err = f.Bool(fv.Bool())
	case reflect.Int32:
		_, err = f.Int(int32(fv.Int()))
	case reflect.Int, reflect.Int64:
		_, err = f.Long(fv.Int())
	case reflect.Float32:
		_, err = f.Float(float32(fv.Float()))
	case reflect.Float64:
		_, err = f.Double(fv.Float())
	case reflect.Uint32:
		_, err = f.URID(URID(fv.Uint()))
	case reflect.String:
		_, err = f.Str(fv.String())
	case reflect.Slice:
		if field.elem == reflect.Uint8 {
			_, err = f.Chunk(fv.Bytes())
			break
		}
		size := common.FixedSize(field.elem)
		elems := make([]byte, 0, fv.Len()*size)
		for i := 0; i < fv.Len(); i++ {
			elems = common.AppendFixed(elems, fv.Index(i))
		}
		childType, _ := c.atomType(field.elem, reflect.Invalid)
		_, err = f.Vector(childType, uint32(size), elems)
	default:
		err = ErrUnsupported
	}
	return err
}

// Decode fills the tagged fields of out, a pointer to struct, from a single
// query over obj. Fields without a matching property keep their value. It
// returns the number of fields set.
func (c *Codec) Decode(obj Object, out any) (int, error) {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return 0, ErrNotStructPtr
	}
	dst := v.Elem()
	plan, err := c.getPlan(dst.Type())
	if err != nil {
		return 0, err
	}

	values := make([]Atom, len(plan.fields))
	entries := make([]QueryEntry, len(plan.fields))
	for i, field := range plan.fields {
		entries[i] = QueryEntry{Key: field.key, Value: &values[i]}
	}
	if _, err := obj.Query(entries...); err != nil {
		return 0, err
	}

	set := 0
	for i, field := range plan.fields {
		a := values[i]
		if a == nil {
			continue
		}
		if a.Type() != field.typ {
			return set, fmt.Errorf("field %s: %w: got type %d, want %d", field.name, ErrTypeMismatch, a.Type(), field.typ)
		}
		if err := c.decodeField(field, a, dst.Field(field.idx)); err != nil {
			return set, fmt.Errorf("field %s: %w", field.name, err)
		}
		set++
	}
	return set, nil
}

func (c *Codec) decodeField(field propField, a Atom, fv reflect.Value) error {
	switch field.kind {
	case reflect.Bool:
		fv.SetBool(a.AsBool())
	case reflect.Int32:
		fv.SetInt(int64(a.AsInt()))
	case reflect.Int, reflect.Int64:
		fv.SetInt(a.AsLong())
	case reflect.Float32:
		fv.SetFloat(float64(a.AsFloat()))
	case reflect.Float64:
		fv.SetFloat(a.AsDouble())
	case reflect.Uint32:
		fv.SetUint(uint64(a.AsURID()))
	case reflect.String:
		fv.SetString(a.AsString())
	case reflect.Slice:
		if field.elem == reflect.Uint8 {
			fv.SetBytes(bytes.Clone(a.Body()))
			return nil
		}
		vec := a.AsVector()
		size := common.FixedSize(field.elem)
		childType, _ := c.atomType(field.elem, reflect.Invalid)
		if vec.ChildType() != childType || vec.ChildSize() != uint32(size) {
			return fmt.Errorf("%w: vector of type %d size %d", ErrTypeMismatch, vec.ChildType(), vec.ChildSize())
		}
		n := vec.Len()
		slice := reflect.MakeSlice(fv.Type(), n, n)
		off := uint32(HeaderSize + VectorBodySize)
		for i := 0; i < n; i++ {
			common.SetFixed(slice.Index(i), vec, off)
			off += uint32(size)
		}
		fv.Set(slice)
	default:
		return ErrUnsupported
	}
	return nil
}
