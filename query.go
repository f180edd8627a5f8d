package atom

import "fmt"

// QueryEntry asks for the value of Key. On return Value holds the first
// matching property value, or nil.
type QueryEntry struct {
	Key   URID
	Value *Atom
}

// Query fills every entry from a single pass over the object's properties and
// returns the number of entries filled. The first property with a given key
// wins; traversal stops as soon as every entry is filled. Slots are reset to
// nil before the pass. A nil Value or a repeated key is rejected with
// ErrInvalidQuery before anything is written.
func (o Object) Query(entries ...QueryEntry) (int, error) {
	for i, q := range entries {
		if q.Value == nil {
			return 0, fmt.Errorf("%w: entry %d (key %d) has no output slot", ErrInvalidQuery, i, q.Key)
		}
		for _, prev := range entries[:i] {
			if prev.Key == q.Key {
				return 0, fmt.Errorf("%w: key %d queried twice", ErrInvalidQuery, q.Key)
			}
		}
	}
	for _, q := range entries {
		*q.Value = nil
	}
	if len(entries) == 0 {
		return 0, nil
	}

	matches := 0
	o.ForEach(func(p Property) bool {
		key := p.Key()
		for _, q := range entries {
			if q.Key != key {
				continue
			}
			if *q.Value == nil {
				*q.Value = p.Value()
				matches++
			}
			break
		}
		return matches == len(entries)
	})
	return matches, nil
}
