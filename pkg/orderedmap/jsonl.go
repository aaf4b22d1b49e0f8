package orderedmap

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

type record struct {
	Key   any `json:"key"`
	Value any `json:"value"`
}

// ReadJSONL reads {"key": ..., "value": ...} lines into d. Lines are
// inserted in file order. Integral numbers become int keys.
func ReadJSONL(r io.Reader, d *Dict[any, any]) (n int, err error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	for decoder.More() {
		rec := record{}
		if err = decoder.Decode(&rec); err != nil {
			return
		}
		if err = d.Set(normalize(rec.Key), normalize(rec.Value)); err != nil {
			return
		}
		n++
	}

	return
}

func ReadCompressedJSONL(r io.Reader, d *Dict[any, any]) (n int, err error) {
	if r, err = gzip.NewReader(r); err != nil {
		return
	}
	defer r.(*gzip.Reader).Close()

	n, err = ReadJSONL(r, d)
	return
}

func ReadZstdJSONL(r io.Reader, d *Dict[any, any]) (n int, err error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return
	}
	defer decoder.Close()

	n, err = ReadJSONL(decoder, d)
	return
}

// WriteJSONL writes the items of d in insertion order.
func WriteJSONL[K comparable, V any](w io.Writer, d *Dict[K, V]) error {
	encoder := json.NewEncoder(w)

	for _, item := range d.Items() {
		if err := encoder.Encode(record{Key: item.Key, Value: item.Value}); err != nil {
			return err
		}
	}

	return nil
}

func WriteCompressedJSONL[K comparable, V any](w io.Writer, d *Dict[K, V]) error {
	gz := gzip.NewWriter(w)

	if err := WriteJSONL(gz, d); err != nil {
		gz.Close()
		return err
	}

	return gz.Close()
}

func WriteZstdJSONL[K comparable, V any](w io.Writer, d *Dict[K, V]) error {
	encoder, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}

	if err = WriteJSONL(encoder, d); err != nil {
		encoder.Close()
		return err
	}

	return encoder.Close()
}

func normalize(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []any:
		for i := range v {
			v[i] = normalize(v[i])
		}
	case map[string]any:
		for k := range v {
			v[k] = normalize(v[k])
		}
	}

	return v
}
