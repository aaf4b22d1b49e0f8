package keyorder_test

import (
	"math"
	"testing"

	"github.com/UTD-JLA/hashdict/internal/keyorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	type pair struct{ A, B int }

	cases := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", 1, 2, -1},
		{"equal ints", 7, 7, 0},
		{"strings", "b", "a", 1},
		{"bools", false, true, -1},
		{"int and float", 2, 1.5, 1},
		{"negative and uint", -1, uint(0), -1},
		{"uint and negative", uint(0), -1, 1},
		{"large uint", uint64(math.MaxUint64), int64(math.MaxInt64), 1},
		{"int above float precision", int64(1<<53 + 1), float64(1 << 53), 1},
		{"same value different type", int32(3), int64(3), -1},
		{"float32 and float64", float32(0.5), 0.5, -1},
		{"negative zero", math.Copysign(0, -1), 0.0, 0},
		{"arrays", [3]int{1, 2, 3}, [3]int{1, 2, 4}, -1},
		{"array prefix", [2]any{1, 2}, [3]any{1, 2, 0}, -1},
		{"structs", pair{1, 2}, pair{1, 1}, 1},
		{"nil", nil, nil, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := keyorder.Compare(c.a, c.b)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)

			back, err := keyorder.Compare(c.b, c.a)
			require.NoError(t, err)
			assert.Equal(t, -c.want, back)
		})
	}
}

func TestCompareIncomparable(t *testing.T) {
	cases := []struct {
		name string
		a, b any
	}{
		{"string and int", "a", 1},
		{"bool and int", true, 1},
		{"nil and string", nil, "a"},
		{"NaN", math.NaN(), 1.0},
		{"slice", []int{1}, []int{1}},
		{"nested", [1]any{"a"}, [1]any{2}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := keyorder.Compare(c.a, c.b)
			assert.ErrorIs(t, err, keyorder.ErrIncomparable)
		})
	}
}
