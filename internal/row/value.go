package row

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Value is a sealed interface over the cell types a record can hold.
// Only Null, Bool, Int, Float, and String implement it.
type Value interface {
	rowValue() // sealed
	Kind() Kind
}

// Kind identifies the concrete type behind a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

// String returns the kind name used in error messages and trace output.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Null is the absent cell. Missing columns and explicit nulls both read as
// Null; using a concrete type instead of nil keeps the sealed interface
// total.
type Null struct{}

func (Null) rowValue()  {}
func (Null) Kind() Kind { return KindNull }

// MarshalJSON renders Null as a JSON null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Bool is a boolean cell.
type Bool bool

func (Bool) rowValue()  {}
func (Bool) Kind() Kind { return KindBool }

// Int is an integer cell, always int64.
type Int int64

func (Int) rowValue()  {}
func (Int) Kind() Kind { return KindInt }

// Float is a floating-point cell, always float64.
type Float float64

func (Float) rowValue()  {}
func (Float) Kind() Kind { return KindFloat }

// String is a text cell.
type String string

func (String) rowValue()  {}
func (String) Kind() Kind { return KindString }

// classRank buckets values into the affinity classes Compare orders by.
// Int and Float share a class so mixed numeric columns sort sensibly.
func classRank(v Value) int {
	switch v.(type) {
	case Null:
		return 0
	case Bool:
		return 1
	case Int, Float:
		return 2
	default:
		return 3
	}
}

// Compare orders two cells the way SQLite orders values of mixed storage
// classes: null before bool before numeric before string. Within a class:
// false before true, numbers on one number line regardless of int or float
// representation, strings byte-wise. The result is negative, zero, or
// positive in the usual comparator convention.
func Compare(a, b Value) int {
	ra, rb := classRank(a), classRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch av := a.(type) {
	case Null:
		return 0
	case Bool:
		bv := b.(Bool)
		if av == bv {
			return 0
		}
		if !av {
			return -1
		}
		return 1
	case Int:
		if bv, ok := b.(Int); ok {
			return cmp.Compare(int64(av), int64(bv))
		}
		return cmp.Compare(float64(av), float64(b.(Float)))
	case Float:
		if bv, ok := b.(Float); ok {
			return cmp.Compare(float64(av), float64(bv))
		}
		return cmp.Compare(float64(av), float64(b.(Int)))
	case String:
		return cmp.Compare(string(av), string(b.(String)))
	default:
		return 0
	}
}

// Equal reports whether two cells hold the same value, with integers and
// floats unified on one number line: Int(2) equals Float(2).
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// FromAny converts a value produced by encoding/json (with UseNumber),
// yaml.v3, or database/sql scanning into a Value. Nested arrays and
// objects are rejected: records are flat.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("integer out of int64 range: %d", val)
		}
		return Int(val), nil
	case float64:
		return Float(val), nil
	case float32:
		return Float(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("number out of range: %s", val)
		}
		return Float(f), nil
	case []byte:
		return String(val), nil
	default:
		return nil, fmt.Errorf("unsupported cell type %T (cells must be scalar)", v)
	}
}

// ToAny unwraps a cell to the plain Go value expression evaluators and
// schema validators expect: nil, bool, int64, float64, or string.
func ToAny(v Value) any {
	switch val := v.(type) {
	case Bool:
		return bool(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case String:
		return string(val)
	default:
		return nil
	}
}

// Format renders a cell for human-readable table output. Null renders as
// the empty string, matching how SQLite's shell prints NULL by default.
func Format(v Value) string {
	switch val := v.(type) {
	case Bool:
		return strconv.FormatBool(bool(val))
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case String:
		return string(val)
	default:
		return ""
	}
}
