package row

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Record is one flat row: column name to cell value.
type Record map[string]Value

// Field returns the cell for column name. Absent columns read as Null, so
// predicates and selectors never have to distinguish missing from null.
func (r Record) Field(name string) Value {
	if v, ok := r[name]; ok {
		return v
	}
	return Null{}
}

// Fields returns the record's column names sorted byte-wise. Iteration
// over the map itself is not deterministic; use this for any output or
// encoding that must be.
func (r Record) Fields() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Clone returns an independent copy of the record. Cell values are
// immutable scalars, so a shallow copy suffices.
func (r Record) Clone() Record {
	return maps.Clone(r)
}

// CanonicalKey encodes the whole record into one deterministic string,
// usable as a map key for record-level deduplication and grouping. Two
// records produce the same key exactly when every column compares Equal:
// columns are emitted in sorted order, strings are NFC-normalized, and
// integral floats encode like integers so numeric unification carries
// over.
func (r Record) CanonicalKey() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range r.Fields() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Quote(norm.NFC.String(name)))
		sb.WriteByte(':')
		sb.WriteString(CanonicalValue(r[name]))
	}
	sb.WriteByte('}')
	return sb.String()
}

// CanonicalValue encodes a single cell deterministically. Strings are
// NFC-normalized and quoted; floats with an exact integer value inside the
// float64 safe-integer range encode identically to that integer, keeping
// the encoding consistent with Equal.
func CanonicalValue(v Value) string {
	switch val := v.(type) {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(bool(val))
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		f := float64(val)
		if f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case String:
		return strconv.Quote(norm.NFC.String(string(val)))
	default:
		return "null"
	}
}
