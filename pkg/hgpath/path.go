package hgpath

import (
	"bytes"
)

// Path is an ordered sequence of elements. The zero value is the empty
// path, which is a valid value (it denotes the repository root).
type Path []Element

// Parse builds a Path from raw bytes, splitting on '/'. Empty components
// are dropped, so "////" and "" both parse to the empty path and
// "a//b" parses the same as "a/b". Leading and trailing slashes are
// likewise ignored.
func Parse(raw []byte) (Path, error) {
	var p Path
	for _, comp := range bytes.Split(raw, []byte{'/'}) {
		if len(comp) == 0 {
			continue
		}
		elem, err := NewElement(comp)
		if err != nil {
			return nil, err
		}
		p = append(p, elem)
	}
	return p, nil
}

// ParseString is Parse over a string.
func ParseString(raw string) (Path, error) {
	return Parse([]byte(raw))
}

// IsEmpty returns true for the empty path.
func (p Path) IsEmpty() bool {
	return len(p) == 0
}

// Len returns the number of elements.
func (p Path) Len() int {
	return len(p)
}

// Basename returns the last element, or nil for the empty path.
func (p Path) Basename() Element {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// Dirs returns all elements but the last. For the empty path it
// returns nil.
func (p Path) Dirs() []Element {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Join returns a new path with the other path's elements appended.
func (p Path) Join(other Path) Path {
	if len(other) == 0 {
		return p
	}
	joined := make(Path, 0, len(p)+len(other))
	joined = append(joined, p...)
	joined = append(joined, other...)
	return joined
}

// Bytes renders the path with '/' separators.
func (p Path) Bytes() []byte {
	if len(p) == 0 {
		return nil
	}

	size := len(p) - 1
	for _, e := range p {
		size += len(e)
	}

	out := make([]byte, 0, size)
	for i, e := range p {
		if i > 0 {
			out = append(out, '/')
		}
		out = append(out, e...)
	}
	return out
}

// String renders the path with '/' separators. The result is not
// guaranteed to be valid UTF-8.
func (p Path) String() string {
	return string(p.Bytes())
}

// Equal compares two paths element-wise.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !p[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
