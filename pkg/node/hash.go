package node

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a node hash as a 40-character lowercase hex string.
// Example: "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"
type Hash string

// RawHash represents a node hash as a 20-byte array.
type RawHash [20]byte

const (
	// HexLength is the length of a node hash in hex characters (40)
	HexLength = 40
	// RawLength is the length of a node hash in bytes (20)
	RawLength = 20
	// ShortLength is the default length for abbreviated hashes
	ShortLength = 12
)

// NullHash returns the all-zero hash used for absent parents and the
// null manifest.
func NullHash() Hash {
	return Hash("0000000000000000000000000000000000000000")
}

// HashOf computes the SHA-1 hash of the given data.
func HashOf(data []byte) Hash {
	sum := sha1.Sum(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// RawHashOf computes the SHA-1 hash of the given data as a 20-byte array.
func RawHashOf(data []byte) RawHash {
	return sha1.Sum(data)
}

// FromRaw creates a Hash from a 20-byte array.
func FromRaw(raw RawHash) Hash {
	return Hash(hex.EncodeToString(raw[:]))
}

// FromHex creates a Hash from a hex string.
// Returns an error if the string is not a valid 40-character hex hash.
func FromHex(s string) (Hash, error) {
	h := Hash(strings.ToLower(s))
	if err := h.Validate(); err != nil {
		return "", err
	}
	return h, nil
}

// FromHexBytes creates a Hash from hex bytes, as found on the manifest
// line of a changeset.
func FromHexBytes(b []byte) (Hash, error) {
	return FromHex(string(b))
}

// String returns the hash as a string.
func (h Hash) String() string {
	return string(h)
}

// IsValid returns true if this is a valid node hash.
func (h Hash) IsValid() bool {
	return h.Validate() == nil
}

// Validate checks that the hash is 40 lowercase-insensitive hex characters.
func (h Hash) Validate() error {
	if len(h) != HexLength {
		return fmt.Errorf("hash must be %d characters long, got %d", HexLength, len(h))
	}

	for _, c := range h {
		if !isHexChar(c) {
			return fmt.Errorf("hash must contain only hex characters, found '%c'", c)
		}
	}

	return nil
}

// IsNull returns true if this is the null hash.
func (h Hash) IsNull() bool {
	return h == NullHash()
}

// Short returns an abbreviated form of the hash.
func (h Hash) Short() string {
	if len(h) >= ShortLength {
		return string(h[:ShortLength])
	}
	return string(h)
}

// Raw returns the hash as a 20-byte array.
func (h Hash) Raw() (RawHash, error) {
	if err := h.Validate(); err != nil {
		return RawHash{}, err
	}

	decoded, err := hex.DecodeString(string(h))
	if err != nil {
		return RawHash{}, err
	}

	var raw RawHash
	copy(raw[:], decoded)
	return raw, nil
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := FromHex(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Hex returns the hash as a hex string.
func (rh RawHash) Hex() Hash {
	return FromRaw(rh)
}

// String returns the hash as a hex string.
func (rh RawHash) String() string {
	return hex.EncodeToString(rh[:])
}

// IsNull returns true if every byte is zero.
func (rh RawHash) IsNull() bool {
	for _, b := range rh {
		if b != 0 {
			return false
		}
	}
	return true
}

// isHexChar returns true if the character is a valid hex character.
func isHexChar(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
