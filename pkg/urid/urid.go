// Package urid is an in-process URI registry. It hands out stable URIDs for
// the lifetime of a Map and can be saved to and restored from YAML.
package urid

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/rawbytedev/atom"
	"github.com/rawbytedev/atom/pkg/feature"
	"github.com/rawbytedev/atom/pkg/uris"
	"gopkg.in/yaml.v3"
)

var ErrBadSnapshot = errors.New("bad urid snapshot")

// Map assigns URIDs to URIs. The zero URID is never assigned and the empty
// URI always maps to it. Map is safe for concurrent use.
type Map struct {
	mu   sync.RWMutex
	ids  map[string]atom.URID
	uris map[atom.URID]string
	next atom.URID
	log  *slog.Logger
}

type Option func(*Map)

// WithLogger traces new mappings at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(m *Map) { m.log = l }
}

// WithFirst sets the first URID handed out. Values below 1 are ignored.
func WithFirst(id atom.URID) Option {
	return func(m *Map) {
		if id > 0 {
			m.next = id
		}
	}
}

func New(opts ...Option) *Map {
	m := &Map{
		ids:  make(map[string]atom.URID),
		uris: make(map[atom.URID]string),
		next: 1,
		log:  slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Map returns the URID of uri, assigning the next free one on first use.
func (m *Map) Map(uri string) atom.URID {
	if uri == "" {
		return 0
	}
	m.mu.RLock()
	if id, ok := m.ids[uri]; ok {
		m.mu.RUnlock()
		return id
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.ids[uri]; ok {
		return id
	}
	id := m.next
	m.next++
	m.ids[uri] = id
	m.uris[id] = uri
	m.log.Debug("mapped uri", "uri", uri, "urid", id)
	return id
}

// Unmap returns the URI of id.
func (m *Map) Unmap(id atom.URID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	uri, ok := m.uris[id]
	return uri, ok
}

func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ids)
}

// Features exposes the map as the urid#map and urid#unmap host features.
func (m *Map) Features() []*feature.Feature {
	return []*feature.Feature{
		{URI: uris.URIDMap, Data: atom.Mapper(m)},
		{URI: uris.URIDUnmap, Data: atom.Unmapper(m)},
	}
}

type entry struct {
	ID  uint32 `yaml:"id"`
	URI string `yaml:"uri"`
}

type snapshot struct {
	Next    uint32  `yaml:"next"`
	Entries []entry `yaml:"entries"`
}

// Save writes every mapping, ordered by URID, as YAML.
func (m *Map) Save(w io.Writer) error {
	m.mu.RLock()
	snap := snapshot{Next: uint32(m.next), Entries: make([]entry, 0, len(m.uris))}
	for id, uri := range m.uris {
		snap.Entries = append(snap.Entries, entry{ID: uint32(id), URI: uri})
	}
	m.mu.RUnlock()
	sort.Slice(snap.Entries, func(i, j int) bool { return snap.Entries[i].ID < snap.Entries[j].ID })

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&snap); err != nil {
		return fmt.Errorf("encoding urid snapshot: %w", err)
	}
	return enc.Close()
}

// Load restores a map written by Save. New URIs get URIDs above every
// restored one.
func Load(r io.Reader, opts ...Option) (*Map, error) {
	var snap snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding urid snapshot: %w", err)
	}
	m := New(opts...)
	for _, e := range snap.Entries {
		id := atom.URID(e.ID)
		if id == 0 || e.URI == "" {
			return nil, fmt.Errorf("%w: entry %d=%q", ErrBadSnapshot, e.ID, e.URI)
		}
		if prev, dup := m.uris[id]; dup {
			return nil, fmt.Errorf("%w: urid %d used by %q and %q", ErrBadSnapshot, e.ID, prev, e.URI)
		}
		if prev, dup := m.ids[e.URI]; dup {
			return nil, fmt.Errorf("%w: %q mapped to %d and %d", ErrBadSnapshot, e.URI, prev, e.ID)
		}
		m.ids[e.URI] = id
		m.uris[id] = e.URI
		if id >= m.next {
			m.next = id + 1
		}
	}
	if atom.URID(snap.Next) > m.next {
		m.next = atom.URID(snap.Next)
	}
	return m, nil
}
