// Package fsencode maps repository paths to filesystem-safe store paths.
//
// Repository metadata references paths as raw bytes. Storing those paths
// on a real filesystem has to survive case-insensitive filesystems,
// Windows reserved device names (con, aux, com1, ...), trailing dots and
// spaces, and path length limits. The two encodings here reproduce the
// Mercurial store encodings byte for byte:
//
//   - SimpleEncode: the 'store' requirement encoding. Character-level
//     escaping only, no length limit.
//   - FncacheEncode: the 'store'+'fncache' encoding. Same as simple for
//     short paths, with reserved-name handling, and a hashed fallback
//     ("dh/...") once the encoded path exceeds MaxStorePathLen bytes.
//
// Both are total, deterministic functions. The hashed fallback is lossy:
// an encoded path cannot be decoded back to the original bytes.
package fsencode

import (
	"github.com/utkarsh5026/HgStore/pkg/hgpath"
)

// MaxStorePathLen is the byte ceiling for fncache-encoded paths,
// measured on the full encoded path including separators. This is an
// interface constant of the on-disk format, not a tunable.
const MaxStorePathLen = 120

const hexDigits = "0123456789abcdef"

// hexenc appends the ~HH escape for a byte.
func hexenc(b byte, out []byte) []byte {
	out = append(out, '~')
	out = append(out, hexDigits[(b>>4)&0xf])
	out = append(out, hexDigits[b&0xf])
	return out
}

// direncode disambiguates directory names from store metadata files.
// A directory ending in ".hg", ".i" or ".d" gets a literal ".hg" suffix.
// Never applied to basenames.
func direncode(elem []byte) []byte {
	ret := make([]byte, 0, len(elem)+3)
	ret = append(ret, elem...)
	if hasSuffix(elem, ".hg") || hasSuffix(elem, ".i") || hasSuffix(elem, ".d") {
		ret = append(ret, ".hg"...)
	}
	return ret
}

func hasSuffix(b []byte, suffix string) bool {
	return len(b) >= len(suffix) && string(b[len(b)-len(suffix):]) == suffix
}

// fnencode is the primary character-level escape. Control bytes, high
// bytes and filesystem-hostile punctuation become ~HH; uppercase letters
// become '_' plus the lowercase letter; '_' doubles. The asymmetric
// treatment of '_' and uppercase keeps the mapping injective across
// case-folding filesystems.
func fnencode(elem []byte) []byte {
	ret := make([]byte, 0, len(elem))
	for _, e := range elem {
		switch {
		case e <= 31 || e >= 126:
			ret = hexenc(e, ret)
		case e == '\\' || e == ':' || e == '*' || e == '?' || e == '"' ||
			e == '<' || e == '>' || e == '|':
			ret = hexenc(e, ret)
		case e >= 'A' && e <= 'Z':
			ret = append(ret, '_', e-'A'+'a')
		case e == '_':
			ret = append(ret, '_', '_')
		default:
			ret = append(ret, e)
		}
	}
	return ret
}

// lowerencode is fnencode for the hashed fallback: uppercase folds to
// plain lowercase and '_' is left alone.
func lowerencode(elem []byte) []byte {
	ret := make([]byte, 0, len(elem))
	for _, e := range elem {
		switch {
		case e <= 31 || e >= 126:
			ret = hexenc(e, ret)
		case e == '\\' || e == ':' || e == '*' || e == '?' || e == '"' ||
			e == '<' || e == '>' || e == '|':
			ret = hexenc(e, ret)
		case e >= 'A' && e <= 'Z':
			ret = append(ret, e-'A'+'a')
		default:
			ret = append(ret, e)
		}
	}
	return ret
}

// auxencode remaps Windows reserved names and trailing '.' or ' '.
//
// With dotencode, a leading '.' or space is hex-escaped and that
// preempts the reserved-name check. The reserved-name rule fires when
// the bytes before the first '.' are exactly "aux"/"con"/"prn"/"nul",
// or "com"/"lpt" followed by a digit 1-9; the third byte is then
// hex-escaped. A trailing '.' or space is always hex-escaped.
func auxencode(elem []byte, dotencode bool) []byte {
	ret := make([]byte, 0, len(elem)+2)

	if len(elem) > 0 {
		first := elem[0]
		if dotencode && (first == '.' || first == ' ') {
			ret = hexenc(first, ret)
			ret = append(ret, elem[1:]...)
		} else {
			pos := indexByte(elem, '.')
			if pos == -1 {
				pos = len(elem)
			}
			prefixLen := min(3, pos)
			prefix := string(elem[:prefixLen])
			switch {
			case (prefix == "aux" || prefix == "con" || prefix == "prn" || prefix == "nul") &&
				pos == 3:
				ret = append(ret, elem[:2]...)
				ret = hexenc(elem[2], ret)
				ret = append(ret, elem[3:]...)
			case (prefix == "com" || prefix == "lpt") && pos == 4 &&
				elem[3] >= '1' && elem[3] <= '9':
				ret = append(ret, elem[:2]...)
				ret = hexenc(elem[2], ret)
				ret = append(ret, elem[3:]...)
			default:
				ret = append(ret, elem...)
			}
		}
	}

	// hex encode trailing '.' or ' '
	if n := len(ret); n > 0 {
		if last := ret[n-1]; last == '.' || last == ' ' {
			ret = hexenc(last, ret[:n-1])
		}
	}

	return ret
}

func indexByte(b []byte, c byte) int {
	for i, e := range b {
		if e == c {
			return i
		}
	}
	return -1
}

// SimpleEncode maps a path to its store form under the plain 'store'
// encoding: fnencode over every element, directories direncode'd first,
// no reserved-name handling and no length ceiling. The empty path maps
// to the empty string.
func SimpleEncode(p hgpath.Path) string {
	if p.IsEmpty() {
		return ""
	}

	out := make([]byte, 0, encodedSizeHint(p))
	for _, dir := range p.Dirs() {
		out = append(out, fnencode(direncode(dir.Bytes()))...)
		out = append(out, '/')
	}
	out = append(out, fnencode(p.Basename().Bytes())...)
	return string(out)
}

// FncacheEncode maps a path to its store form under the 'fncache'
// encoding. Every element additionally passes through auxencode; if the
// encoded path exceeds MaxStorePathLen bytes the hashed fallback is
// returned instead. The empty path maps to the empty string.
func FncacheEncode(p hgpath.Path, dotencode bool) string {
	if p.IsEmpty() {
		return ""
	}

	out := make([]byte, 0, encodedSizeHint(p))
	for _, dir := range p.Dirs() {
		out = append(out, auxencode(fnencode(direncode(dir.Bytes())), dotencode)...)
		out = append(out, '/')
	}
	out = append(out, auxencode(fnencode(p.Basename().Bytes()), dotencode)...)

	if len(out) > MaxStorePathLen {
		return hashencode(p.Dirs(), p.Basename().Bytes(), dotencode)
	}
	return string(out)
}

// encodedSizeHint sizes the output buffer for the worst case of ~HH
// escaping every byte.
func encodedSizeHint(p hgpath.Path) int {
	size := p.Len()
	for _, e := range p {
		size += 3 * len(e.Bytes())
	}
	return size
}
