// Package keyhash computes a canonical hash for dictionary keys.
//
// Keys are walked with reflect and written to an xxhash digest in a
// type-tagged encoding, so equal keys always produce equal sums.
package keyhash

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

var ErrUnhashable = errors.New("unhashable key")

const (
	tagBool byte = iota + 1
	tagInt
	tagUint
	tagFloat
	tagString
	tagArray
	tagStruct
	tagNil
)

// Checker validates key kinds. Verdicts for types that hold neither an
// interface nor a float are cached, everything else is walked per value.
type Checker struct {
	verdicts map[reflect.Type]error
}

func NewChecker() *Checker {
	return &Checker{verdicts: make(map[reflect.Type]error)}
}

// Check reports whether key can be hashed and ordered.
func (c *Checker) Check(key any) error {
	if key == nil {
		return nil
	}

	t := reflect.TypeOf(key)

	if err, ok := c.verdicts[t]; ok {
		return err
	}

	if !needsWalk(t) {
		err := checkType(t)
		c.verdicts[t] = err
		return err
	}

	return checkValue(reflect.ValueOf(key))
}

// Check is a convenience wrapper that does not cache.
func Check(key any) error {
	if key == nil {
		return nil
	}

	return checkValue(reflect.ValueOf(key))
}

// Sum returns the canonical 64-bit hash of key.
func Sum(key any) (uint64, error) {
	d := xxhash.New()

	if key == nil {
		_, _ = d.Write([]byte{tagNil})
		return d.Sum64(), nil
	}

	if err := write(d, reflect.ValueOf(key)); err != nil {
		return 0, err
	}

	return d.Sum64(), nil
}

func unhashable(t reflect.Type) error {
	return fmt.Errorf("%w: %s", ErrUnhashable, t)
}

// needsWalk reports whether the verdict for t depends on the value.
func needsWalk(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Float32, reflect.Float64:
		return true
	case reflect.Array:
		return needsWalk(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if needsWalk(t.Field(i).Type) {
				return true
			}
		}
	}

	return false
}

func checkType(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Array:
		return checkType(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if err := checkType(t.Field(i).Type); err != nil {
				return err
			}
		}
		return nil
	}

	return unhashable(t)
}

func checkValue(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return checkValue(v.Elem())
	case reflect.Float32, reflect.Float64:
		if math.IsNaN(v.Float()) {
			return fmt.Errorf("%w: NaN", ErrUnhashable)
		}
		return nil
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := checkValue(v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if err := checkValue(v.Field(i)); err != nil {
				return err
			}
		}
		return nil
	}

	return checkType(v.Type())
}

func write(d *xxhash.Digest, v reflect.Value) error {
	var buf [9]byte

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			_, _ = d.Write([]byte{tagNil})
			return nil
		}
		return write(d, v.Elem())
	case reflect.Bool:
		buf[0] = tagBool
		if v.Bool() {
			buf[1] = 1
		}
		_, _ = d.Write(buf[:2])
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf[0] = tagInt
		binary.LittleEndian.PutUint64(buf[1:], uint64(v.Int()))
		_, _ = d.Write(buf[:])
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		buf[0] = tagUint
		binary.LittleEndian.PutUint64(buf[1:], v.Uint())
		_, _ = d.Write(buf[:])
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) {
			return fmt.Errorf("%w: NaN", ErrUnhashable)
		}
		if f == 0 {
			f = 0 // -0 == +0
		}
		buf[0] = tagFloat
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	case reflect.String:
		s := v.String()
		buf[0] = tagString
		binary.LittleEndian.PutUint64(buf[1:], uint64(len(s)))
		_, _ = d.Write(buf[:])
		_, _ = d.WriteString(s)
	case reflect.Array:
		buf[0] = tagArray
		binary.LittleEndian.PutUint64(buf[1:], uint64(v.Len()))
		_, _ = d.Write(buf[:])
		for i := 0; i < v.Len(); i++ {
			if err := write(d, v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Struct:
		buf[0] = tagStruct
		binary.LittleEndian.PutUint64(buf[1:], uint64(v.NumField()))
		_, _ = d.Write(buf[:])
		for i := 0; i < v.NumField(); i++ {
			if err := write(d, v.Field(i)); err != nil {
				return err
			}
		}
	default:
		return unhashable(v.Type())
	}

	return nil
}
