// Package validate is the schema validation engine for form input.
//
// Each form type carries a Validate method that checks every field rule,
// collects all failures in one pass, and returns them as Issues addressed by
// a Path. A Path locates the offending input precisely, including inside
// dynamically sized lists of sub-forms: a failure on the price of the third
// stop of a route form carries the path stops[2].priceFromStart.
//
// Whole-object refinements (rules spanning several fields) run only after
// every per-field rule has passed on the raw shape; when a refinement fails
// its issue is attached to the field named by the rule, never to the object.
package validate

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: either a field name or a non-negative
// array index. Exactly one of the two is meaningful; Index is -1 for field
// segments.
type Segment struct {
	Name  string
	Index int
}

// Field returns a field-name path segment.
func Field(name string) Segment {
	return Segment{Name: name, Index: -1}
}

// Index returns an array-index path segment.
func Index(i int) Segment {
	return Segment{Index: i}
}

// IsIndex reports whether the segment addresses an array element.
func (s Segment) IsIndex() bool {
	return s.Name == ""
}

// Path addresses a single input inside a possibly nested form value.
type Path []Segment

// String renders the path in display form, e.g. "stops[2].priceFromStart".
func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p {
		if seg.IsIndex() {
			b.WriteString("[")
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteString("]")
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(seg.Name)
	}
	return b.String()
}

// Equal reports whether two paths address the same input.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
