package space

import "fmt"

// Value is one entry in a Parameter's range. It may hold an integer, an
// ordinal integer tuple (e.g. a tile factorization), or a categorical
// string — the three value kinds named in §3.
type Value struct {
	Int    int
	Ints   []int
	String string
	kind   valueKind
}

type valueKind int

const (
	kindInt valueKind = iota
	kindInts
	kindString
)

// IntValue wraps a plain integer.
func IntValue(v int) Value { return Value{Int: v, kind: kindInt} }

// IntsValue wraps an ordinal integer tuple (a tile factorization).
func IntsValue(v []int) Value { return Value{Ints: v, kind: kindInts} }

// StringValue wraps a categorical string.
func StringValue(v string) Value { return Value{String: v, kind: kindString} }

// IsInt reports whether this Value holds a plain integer.
func (v Value) IsInt() bool { return v.kind == kindInt }

// IsInts reports whether this Value holds an integer tuple.
func (v Value) IsInts() bool { return v.kind == kindInts }

// IsString reports whether this Value holds a categorical string.
func (v Value) IsString() bool { return v.kind == kindString }

func (v Value) String_() string {
	switch v.kind {
	case kindInt:
		return fmt.Sprintf("%d", v.Int)
	case kindInts:
		return fmt.Sprintf("%v", v.Ints)
	default:
		return v.String
	}
}

// Parameter is a named dimension of the design space: a name and an
// ordered, enumerable range of Values. A Parameter's range size is >= 1 and
// fixed at construction (§3).
type Parameter struct {
	Name  string
	Range []Value
}

// NewParameter constructs a Parameter. Panics if the range is empty — the
// spec requires every parameter's range size to be >= 1, and an empty range
// can only be a construction bug (no realizable point could ever use it).
func NewParameter(name string, rng []Value) Parameter {
	if len(rng) == 0 {
		panic(fmt.Sprintf("space: parameter %q has an empty range", name))
	}
	return Parameter{Name: name, Range: rng}
}

// Size returns the number of values in this parameter's range.
func (p Parameter) Size() int { return len(p.Range) }

func (p Parameter) String() string {
	return fmt.Sprintf("%s %v", p.Name, p.Range)
}
