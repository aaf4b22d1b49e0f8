// Package keyorder defines the total order used to sort keys inside a bucket.
package keyorder

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

var ErrIncomparable = errors.New("keys cannot be ordered")

type category int

const (
	categoryInvalid category = iota
	categoryNil
	categoryBool
	categoryNumber
	categoryString
	categoryArray
	categoryStruct
)

func categoryOf(v reflect.Value) category {
	switch v.Kind() {
	case reflect.Invalid:
		return categoryNil
	case reflect.Bool:
		return categoryBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return categoryNumber
	case reflect.String:
		return categoryString
	case reflect.Array:
		return categoryArray
	case reflect.Struct:
		return categoryStruct
	}

	return categoryInvalid
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to
// or after b. A result of 0 means a == b.
func Compare(a, b any) (int, error) {
	return compare(reflect.ValueOf(a), reflect.ValueOf(b))
}

func incomparable(a, b reflect.Value) error {
	return fmt.Errorf("%w: %s and %s", ErrIncomparable, typeName(a), typeName(b))
}

func typeName(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}

	return v.Type().String()
}

func compare(a, b reflect.Value) (int, error) {
	for a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	for b.Kind() == reflect.Interface {
		b = b.Elem()
	}

	ca, cb := categoryOf(a), categoryOf(b)

	if ca == categoryInvalid || cb == categoryInvalid || ca != cb {
		return 0, incomparable(a, b)
	}

	switch ca {
	case categoryNil:
		return 0, nil
	case categoryBool:
		return byType(a, b, cmp.Compare(boolInt(a.Bool()), boolInt(b.Bool())))
	case categoryNumber:
		c, err := compareNumbers(a, b)
		if err != nil {
			return 0, err
		}
		return byType(a, b, c)
	case categoryString:
		return byType(a, b, strings.Compare(a.String(), b.String()))
	case categoryArray:
		return compareArrays(a, b)
	case categoryStruct:
		return compareStructs(a, b)
	}

	return 0, incomparable(a, b)
}

// byType breaks ties between values of different dynamic types so that
// ordering-equality matches Go equality of the boxed values.
func byType(a, b reflect.Value, c int) (int, error) {
	if c != 0 || a.Type() == b.Type() {
		return c, nil
	}

	return strings.Compare(a.Type().String(), b.Type().String()), nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

func isSigned(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}

	return false
}

func isFloat(v reflect.Value) bool {
	return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func compareNumbers(a, b reflect.Value) (int, error) {
	switch {
	case isFloat(a) || isFloat(b):
		fa, fb := toFloat(a), toFloat(b)
		if math.IsNaN(fa) || math.IsNaN(fb) {
			return 0, incomparable(a, b)
		}
		if c := cmp.Compare(fa, fb); c != 0 {
			return c, nil
		}
		// Equal as floats; large integers may still differ.
		if !isFloat(a) {
			return compareIntFloat(a, fb), nil
		}
		if !isFloat(b) {
			return -compareIntFloat(b, fa), nil
		}
		return 0, nil
	case isSigned(a) && isSigned(b):
		return cmp.Compare(a.Int(), b.Int()), nil
	case !isSigned(a) && !isSigned(b):
		return cmp.Compare(a.Uint(), b.Uint()), nil
	case isSigned(a):
		if a.Int() < 0 {
			return -1, nil
		}
		return cmp.Compare(uint64(a.Int()), b.Uint()), nil
	default:
		if b.Int() < 0 {
			return 1, nil
		}
		return cmp.Compare(a.Uint(), uint64(b.Int())), nil
	}
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isFloat(v):
		return v.Float()
	case isSigned(v):
		return float64(v.Int())
	default:
		return float64(v.Uint())
	}
}

// compareIntFloat compares an integer against an integral float.
func compareIntFloat(i reflect.Value, f float64) int {
	if isSigned(i) {
		switch {
		case f >= 1<<63:
			return -1
		case f < -(1 << 63):
			return 1
		}
		return cmp.Compare(i.Int(), int64(f))
	}

	switch {
	case f < 0:
		return 1
	case f >= 1<<64:
		return -1
	}

	return cmp.Compare(i.Uint(), uint64(f))
}

func compareArrays(a, b reflect.Value) (int, error) {
	n := min(a.Len(), b.Len())

	for i := 0; i < n; i++ {
		c, err := compare(a.Index(i), b.Index(i))
		if err != nil || c != 0 {
			return c, err
		}
	}

	if c := cmp.Compare(a.Len(), b.Len()); c != 0 {
		return c, nil
	}

	return byType(a, b, 0)
}

func compareStructs(a, b reflect.Value) (int, error) {
	if a.Type() != b.Type() {
		if c := strings.Compare(a.Type().String(), b.Type().String()); c != 0 {
			return c, nil
		}
		if a.NumField() != b.NumField() {
			return 0, incomparable(a, b)
		}
	}

	for i := 0; i < a.NumField(); i++ {
		c, err := compare(a.Field(i), b.Field(i))
		if err != nil || c != 0 {
			return c, err
		}
	}

	return byType(a, b, 0)
}
