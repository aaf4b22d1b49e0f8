package orderedmap_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/UTD-JLA/hashdict/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `{"key": 1, "value": "one"}
{"key": 3, "value": "three"}
{"key": 2, "value": "two"}
{"key": "ratio", "value": 0.5}
`

func TestReadJSONL(t *testing.T) {
	d := orderedmap.New[any, any]()

	n, err := orderedmap.ReadJSONL(strings.NewReader(fixture), d)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.Equal(t, []any{1, 3, 2, "ratio"}, d.Keys())

	v, ok := d.Get("ratio")
	assert.True(t, ok)
	assert.Equal(t, 0.5, v)
}

func TestReadJSONLUnsupportedKey(t *testing.T) {
	d := orderedmap.New[any, any]()

	n, err := orderedmap.ReadJSONL(strings.NewReader(`{"key": "a", "value": 1}
{"key": [1, 2, 3], "value": 123}
`), d)

	assert.ErrorIs(t, err, orderedmap.ErrUnsupportedKeyKind)
	assert.Equal(t, 1, n)
	assert.Equal(t, []any{"a"}, d.Keys())
}

func TestWriteJSONLRoundTrip(t *testing.T) {
	writers := map[string]struct {
		write func(*bytes.Buffer, *orderedmap.Dict[any, any]) error
		read  func(*bytes.Buffer, *orderedmap.Dict[any, any]) (int, error)
	}{
		"plain": {
			write: func(b *bytes.Buffer, d *orderedmap.Dict[any, any]) error { return orderedmap.WriteJSONL(b, d) },
			read:  func(b *bytes.Buffer, d *orderedmap.Dict[any, any]) (int, error) { return orderedmap.ReadJSONL(b, d) },
		},
		"gzip": {
			write: func(b *bytes.Buffer, d *orderedmap.Dict[any, any]) error { return orderedmap.WriteCompressedJSONL(b, d) },
			read: func(b *bytes.Buffer, d *orderedmap.Dict[any, any]) (int, error) {
				return orderedmap.ReadCompressedJSONL(b, d)
			},
		},
		"zstd": {
			write: func(b *bytes.Buffer, d *orderedmap.Dict[any, any]) error { return orderedmap.WriteZstdJSONL(b, d) },
			read:  func(b *bytes.Buffer, d *orderedmap.Dict[any, any]) (int, error) { return orderedmap.ReadZstdJSONL(b, d) },
		},
	}

	for name, rw := range writers {
		t.Run(name, func(t *testing.T) {
			src := orderedmap.New[any, any]()
			require.NoError(t, src.Set("b", "bee"))
			require.NoError(t, src.Set(7, true))
			require.NoError(t, src.Set("a", "ay"))
			require.NoError(t, src.Delete(7))
			require.NoError(t, src.Set(7, false))

			var buf bytes.Buffer
			require.NoError(t, rw.write(&buf, src))

			dst := orderedmap.New[any, any]()
			n, err := rw.read(&buf, dst)
			require.NoError(t, err)
			assert.Equal(t, 3, n)
			assert.Equal(t, src.Items(), dst.Items())
		})
	}
}
