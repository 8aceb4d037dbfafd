package row

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Field(t *testing.T) {
	r := Record{"name": String("ada"), "age": Int(30)}

	assert.Equal(t, String("ada"), r.Field("name"))
	assert.Equal(t, Null{}, r.Field("missing"))
}

func TestRecord_FieldsSorted(t *testing.T) {
	r := Record{"zebra": Int(1), "apple": Int(2), "mango": Int(3)}

	assert.Equal(t, []string{"apple", "mango", "zebra"}, r.Fields())
}

func TestRecord_Clone(t *testing.T) {
	r := Record{"a": Int(1)}
	c := r.Clone()

	c["a"] = Int(99)
	c["b"] = String("new")

	assert.Equal(t, Int(1), r.Field("a"))
	assert.Equal(t, Null{}, r.Field("b"))
}

func TestCanonicalKey_EqualRecordsSameKey(t *testing.T) {
	a := Record{"x": Int(1), "y": String("s")}
	b := Record{"y": String("s"), "x": Int(1)}

	assert.Equal(t, a.CanonicalKey(), b.CanonicalKey())
}

func TestCanonicalKey_DifferentRecordsDifferentKey(t *testing.T) {
	a := Record{"x": Int(1)}
	b := Record{"x": Int(2)}
	c := Record{"y": Int(1)}

	assert.NotEqual(t, a.CanonicalKey(), b.CanonicalKey())
	assert.NotEqual(t, a.CanonicalKey(), c.CanonicalKey())
}

func TestCanonicalKey_NumericUnification(t *testing.T) {
	// Int(2) and Float(2.0) are Equal, so their keys must collide.
	a := Record{"n": Int(2)}
	b := Record{"n": Float(2.0)}

	assert.Equal(t, a.CanonicalKey(), b.CanonicalKey())
}

func TestCanonicalKey_TypeTagging(t *testing.T) {
	// The string "1" and the number 1 are not Equal and must not collide.
	a := Record{"v": String("1")}
	b := Record{"v": Int(1)}

	assert.NotEqual(t, a.CanonicalKey(), b.CanonicalKey())
}

func TestCanonicalKey_NFCNormalization(t *testing.T) {
	// U+00E9 (é precomposed) vs U+0065 U+0301 (e + combining acute) must
	// produce the same key.
	precomposed := Record{"s": String("café")}
	decomposed := Record{"s": String("café")}

	assert.Equal(t, precomposed.CanonicalKey(), decomposed.CanonicalKey())
}

func TestCanonicalKey_NullAndMissingDiffer(t *testing.T) {
	// An explicit null column participates in the key; a missing column
	// does not.
	withNull := Record{"a": Int(1), "b": Null{}}
	without := Record{"a": Int(1)}

	assert.NotEqual(t, withNull.CanonicalKey(), without.CanonicalKey())
}

func TestCanonicalValue(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"null", Null{}, "null"},
		{"bool", Bool(false), "false"},
		{"int", Int(-5), "-5"},
		{"integral float", Float(3.0), "3"},
		{"fractional float", Float(2.5), "2.5"},
		{"string quoted", String("a b"), `"a b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalValue(tt.in))
		})
	}
}

func TestCanonicalKey_Deterministic(t *testing.T) {
	r := Record{"c": Int(3), "a": Int(1), "b": Int(2)}

	first := r.CanonicalKey()
	for i := 0; i < 50; i++ {
		require.Equal(t, first, r.CanonicalKey())
	}
}
