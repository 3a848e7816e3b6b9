// core/mut/mut.go
package mut

import (
	"fmt"
	"strconv"
)

/* ----------------------- types --------------------- */

// Gap is the symbol a deletion leaves at a position.
const Gap = '-'

// Sub is a single-position substitution. Pos is 0-based; Ref is the
// state being replaced (nearest-node state where defined, otherwise the
// reference state) and Qry the state observed in the query.
type Sub struct {
	Pos int
	Ref byte
	Qry byte
}

// Del is a single deleted position. Ref is the state that was deleted.
type Del struct {
	Pos int
	Ref byte
}

// Range is a half-open 0-based interval [Begin, End).
type Range struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Contains reports whether pos falls inside the range.
func (r Range) Contains(pos int) bool { return pos >= r.Begin && pos < r.End }

/* --------------------- formatting ------------------ */

// String renders the 1-based mutation string, e.g. "C1235T".
func (s Sub) String() string {
	return string(s.Ref) + strconv.Itoa(s.Pos+1) + string(s.Qry)
}

// String renders the 1-based deletion string, e.g. "C1235-".
func (d Del) String() string {
	return string(d.Ref) + strconv.Itoa(d.Pos+1) + string(Gap)
}

// AsSub views the deletion as a substitution to Gap, for shared handling.
func (d Del) AsSub() Sub { return Sub{Pos: d.Pos, Ref: d.Ref, Qry: Gap} }

/* ---------------------- parsing -------------------- */

// ParseSub parses a 1-based mutation string ("C1235T", "A67-").
// The first and last byte are symbols; everything between is the position.
func ParseSub(s string) (Sub, error) {
	if len(s) < 3 {
		return Sub{}, fmt.Errorf("invalid mutation %q", s)
	}
	pos, err := strconv.Atoi(s[1 : len(s)-1])
	if err != nil || pos < 1 {
		return Sub{}, fmt.Errorf("invalid mutation %q: bad position", s)
	}
	return Sub{Pos: pos - 1, Ref: s[0], Qry: s[len(s)-1]}, nil
}

// ParseDel parses a 1-based deletion string ("C1235-").
func ParseDel(s string) (Del, error) {
	sub, err := ParseSub(s)
	if err != nil {
		return Del{}, err
	}
	if sub.Qry != Gap {
		return Del{}, fmt.Errorf("invalid deletion %q: expected trailing %q", s, string(Gap))
	}
	return Del{Pos: sub.Pos, Ref: sub.Ref}, nil
}

/* --------------------- alphabets ------------------- */

// IsCanonicalNuc reports whether b is an unambiguous nucleotide.
func IsCanonicalNuc(b byte) bool {
	return b == 'A' || b == 'C' || b == 'G' || b == 'T'
}

// IsAmbiguousAa reports whether b carries no amino-acid information.
func IsAmbiguousAa(b byte) bool { return b == 'X' }
