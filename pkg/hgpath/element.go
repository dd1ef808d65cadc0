package hgpath

import (
	"bytes"
	"fmt"

	"github.com/utkarsh5026/HgStore/pkg/common/err"
)

const pkgName = "hgpath"

// Element is one /-free component of a repository path.
//
// Elements are raw bytes, not text: repository metadata can reference
// paths in any encoding, so nothing here assumes UTF-8. An Element is
// never empty and never contains '/' or NUL. Everything else, including
// control bytes, spaces and high bytes, is legal and preserved; making
// such names safe for a filesystem is fsencode's job, not this type's.
type Element []byte

// disallowed reports the first forbidden byte in a candidate element.
func disallowed(b []byte) (byte, bool) {
	for _, c := range b {
		if c == '/' || c == 0 {
			return c, true
		}
	}
	return 0, false
}

// NewElement validates raw bytes as a path element.
func NewElement(b []byte) (Element, error) {
	if len(b) == 0 {
		return nil, err.New(pkgName, err.CodeInvalidInput, "new_element",
			"path element cannot be empty", nil)
	}
	if c, bad := disallowed(b); bad {
		return nil, err.New(pkgName, err.CodeInvalidInput, "new_element",
			fmt.Sprintf("path element contains forbidden byte 0x%02x", c), nil)
	}

	elem := make(Element, len(b))
	copy(elem, b)
	return elem, nil
}

// Bytes returns the element's raw bytes.
func (e Element) Bytes() []byte {
	return []byte(e)
}

// String renders the element's bytes as a string. The result is not
// guaranteed to be valid UTF-8.
func (e Element) String() string {
	return string(e)
}

// Equal compares two elements byte-wise.
func (e Element) Equal(other Element) bool {
	return bytes.Equal(e, other)
}
