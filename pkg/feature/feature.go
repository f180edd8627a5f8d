// Package feature looks up host-supplied capabilities by URI.
package feature

import (
	"errors"
	"fmt"
)

var ErrMissingFeature = errors.New("missing required feature")

// Feature is one capability offered by a host: a URI and opaque data.
type Feature struct {
	URI  string
	Data any
}

// Data returns the data of the first feature with the given URI. A nil entry
// ends the list, the way a NULL-terminated array would.
func Data(features []*Feature, uri string) (any, bool) {
	for _, f := range features {
		if f == nil {
			break
		}
		if f.URI == uri {
			return f.Data, f.Data != nil
		}
	}
	return nil, false
}

// Request asks for a feature. Data receives the feature data, or nil.
type Request struct {
	URI      string
	Data     *any
	Required bool
}

// MissingError names the first required feature that was not supplied.
type MissingError struct {
	URI string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFeature, e.URI)
}

func (e *MissingError) Unwrap() error { return ErrMissingFeature }

// Query fills every request in order and stops at the first required
// feature that is missing, returning a *MissingError for it.
func Query(features []*Feature, reqs ...Request) error {
	for _, r := range reqs {
		data, ok := Data(features, r.URI)
		if r.Data != nil {
			*r.Data = data
		}
		if r.Required && !ok {
			return &MissingError{URI: r.URI}
		}
	}
	return nil
}

// Get returns the data for uri as a T.
func Get[T any](features []*Feature, uri string) (T, bool) {
	var zero T
	data, ok := Data(features, uri)
	if !ok {
		return zero, false
	}
	v, ok := data.(T)
	return v, ok
}
