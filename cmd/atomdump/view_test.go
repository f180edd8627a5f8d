package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rawbytedev/atom"
	"github.com/rawbytedev/atom/pkg/dump"
	"github.com/rawbytedev/atom/pkg/urid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewArg(t *testing.T) {
	m := urid.New()
	types := atom.NewTypes(m)
	gain := m.Map("urn:t:gain")

	f := atom.NewForge(make([]byte, 128), types)
	fr, err := f.BeginObject(0, m.Map("urn:t:Control"))
	require.NoError(t, err)
	require.NoError(t, f.Key(gain))
	_, err = f.Float(0.5)
	require.NoError(t, err)
	_, err = f.Pop(fr)
	require.NoError(t, err)
	_, err = f.Int(7)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "atoms.bin")
	require.NoError(t, os.WriteFile(path, f.Bytes(), 0644))
	n := dump.Namer{Types: types, Unmapper: m}

	var out bytes.Buffer
	cfg := &ViewConfig{MainConfig: &MainConfig{}}
	require.NoError(t, viewArg(cfg, &out, path, n, 0))
	assert.Equal(t, "Object urn:t:Control id=0\n  urn:t:gain: Float 0.5\nInt 7\n", out.String())

	out.Reset()
	cfg.Y = true
	require.NoError(t, viewArg(cfg, &out, path, n, gain))
	assert.Equal(t, "0.5\n", out.String())
}

func TestViewArgTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(path, []byte{16, 0, 0, 0, 1, 0, 0, 0, 1}, 0644))
	err := viewArg(&ViewConfig{MainConfig: &MainConfig{}}, &bytes.Buffer{}, path, dump.Namer{}, 0)
	require.ErrorIs(t, err, atom.ErrShortBuffer)
}

func TestRegistryRoundTrip(t *testing.T) {
	cfg := &MainConfig{Map: filepath.Join(t.TempDir(), "urids.yaml")}
	m, err := cfg.registry()
	require.NoError(t, err)
	id := m.Map("urn:t:x")
	require.NoError(t, cfg.saveRegistry(m))

	back, err := cfg.registry()
	require.NoError(t, err)
	uri, ok := back.Unmap(id)
	require.True(t, ok)
	assert.Equal(t, "urn:t:x", uri)
}

func TestViewArgCorruptNestedSize(t *testing.T) {
	m := urid.New()
	types := atom.NewTypes(m)
	f := atom.NewForge(make([]byte, 64), types)
	fr, err := f.BeginObject(0, m.Map("urn:t:Blob"))
	require.NoError(t, err)
	require.NoError(t, f.Key(m.Map("urn:t:data")))
	_, err = f.Chunk([]byte{1, 2, 3, 4})
	require.NoError(t, err)
	_, err = f.Pop(fr)
	require.NoError(t, err)

	data := bytes.Clone(f.Bytes())
	// chunk header follows the object prefix and the property key
	data[24], data[25] = 0xff, 0xff
	path := filepath.Join(t.TempDir(), "corrupt.bin")
	require.NoError(t, os.WriteFile(path, data, 0644))
	n := dump.Namer{Types: types, Unmapper: m}

	for _, y := range []bool{false, true} {
		cfg := &ViewConfig{MainConfig: &MainConfig{Y: y}}
		var out bytes.Buffer
		assert.NotPanics(t, func() {
			err = viewArg(cfg, &out, path, n, 0)
		})
		require.ErrorIs(t, err, atom.ErrShortBuffer)
		assert.Contains(t, err.Error(), "offset 0")
		assert.Zero(t, out.Len())
	}
}
