package changeset

import (
	"sort"
)

// Extra is the auxiliary key-value metadata attached to a changeset.
// Keys and values are opaque bytes. Encoding always iterates keys in
// ascending lexicographic order so serialization is deterministic;
// the encoded form participates in node hashing.
type Extra map[string][]byte

// escapeInto appends s with '\0', '\n' and '\\' escaped. No other byte
// is touched.
func escapeInto(out, s []byte) []byte {
	for _, c := range s {
		switch c {
		case 0:
			out = append(out, '\\', '0')
		case '\n':
			out = append(out, '\\', 'n')
		case '\\':
			out = append(out, '\\', '\\')
		default:
			out = append(out, c)
		}
	}
	return out
}

// unescape inverts escapeInto with one byte of lookahead. A backslash
// followed by anything other than 'n', '0' or '\\' is retained as-is.
func unescape(s []byte) []byte {
	ret := make([]byte, 0, len(s))
	quote := false

	for _, c := range s {
		switch {
		case quote && c == 'n':
			quote = false
			ret = append(ret, '\n')
		case quote && c == '0':
			quote = false
			ret = append(ret, 0)
		case quote && c == '\\':
			quote = false
			ret = append(ret, '\\')
		case quote:
			quote = false
			ret = append(ret, '\\', c)
		case c == '\\':
			quote = true
		default:
			ret = append(ret, c)
		}
	}

	return ret
}

// decodeExtra parses the third field of the time line. Pairs are
// "key:value" joined by NUL, each pair escaped as a whole. Chunks
// without ':' are silently dropped.
func decodeExtra(s []byte) Extra {
	ret := Extra{}

	start := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != 0 {
			continue
		}
		chunk := s[start:i]
		start = i + 1

		if sep := indexByte(chunk, ':'); sep >= 0 {
			key := unescape(chunk[:sep])
			value := unescape(chunk[sep+1:])
			ret[string(key)] = value
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

// Encode serializes the mapping in ascending key order.
func (e Extra) Encode() []byte {
	if len(e) == 0 {
		return nil
	}

	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []byte
	for i, k := range keys {
		if i > 0 {
			out = append(out, 0)
		}
		pair := make([]byte, 0, len(k)+1+len(e[k]))
		pair = append(pair, k...)
		pair = append(pair, ':')
		pair = append(pair, e[k]...)
		out = escapeInto(out, pair)
	}
	return out
}

// Clone returns a deep copy of the mapping.
func (e Extra) Clone() Extra {
	out := make(Extra, len(e))
	for k, v := range e {
		cp := make([]byte, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// Equal compares two mappings byte-wise.
func (e Extra) Equal(other Extra) bool {
	if len(e) != len(other) {
		return false
	}
	for k, v := range e {
		ov, ok := other[k]
		if !ok || string(v) != string(ov) {
			return false
		}
	}
	return true
}
