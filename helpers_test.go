package atom

import (
	"github.com/rawbytedev/atom/internal/common"
)

// testMap is a minimal Mapper; the registry in pkg/urid imports this package.
type testMap struct {
	ids map[string]URID
}

func newTestMap() *testMap { return &testMap{ids: map[string]URID{}} }

func (m *testMap) Map(uri string) URID {
	if id, ok := m.ids[uri]; ok {
		return id
	}
	id := URID(len(m.ids) + 1)
	m.ids[uri] = id
	return id
}

func testTypes() (*testMap, Types) {
	m := newTestMap()
	return m, NewTypes(m)
}

// rawAtom builds a standalone atom with the given type and body.
func rawAtom(typ URID, body []byte) Atom {
	a := make(Atom, PadSize(HeaderSize+uint32(len(body))))
	common.PutU32(a, 0, uint32(len(body)))
	common.PutU32(a, 4, uint32(typ))
	copy(a[HeaderSize:], body)
	return a
}

func u64Body(v uint64) []byte {
	b := make([]byte, 8)
	common.PutU64(b, 0, v)
	return b
}
