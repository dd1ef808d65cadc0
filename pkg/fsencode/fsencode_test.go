package fsencode

import (
	"strings"
	"testing"

	"github.com/utkarsh5026/HgStore/pkg/hgpath"
	"github.com/utkarsh5026/HgStore/pkg/node"
)

func shaOf(s string) node.RawHash {
	return node.RawHashOf([]byte(s))
}

func mustPath(t *testing.T, raw []byte) hgpath.Path {
	t.Helper()
	p, err := hgpath.Parse(raw)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", raw, err)
	}
	return p
}

func checkFncache(t *testing.T, path []byte, expected string) {
	t.Helper()
	got := FncacheEncode(mustPath(t, path), false)
	if got != expected {
		t.Errorf("FncacheEncode(%q) = %q, want %q", path, got, expected)
	}
}

func checkSimple(t *testing.T, path []byte, expected string) {
	t.Helper()
	got := SimpleEncode(mustPath(t, path))
	if got != expected {
		t.Errorf("SimpleEncode(%q) = %q, want %q", path, got, expected)
	}
}

func TestFncacheSimplePaths(t *testing.T) {
	checkFncache(t, []byte("foo/bar"), "foo/bar")
	checkFncache(t, []byte("bar"), "bar")
}

func TestFncacheHexQuote(t *testing.T) {
	checkFncache(t, []byte("oh?/wow~:<>"), "oh~3f/wow~7e~3a~3c~3e")
}

func TestFncacheDirencode(t *testing.T) {
	checkFncache(t, []byte("foo.d/bar.d"), "foo.d.hg/bar.d")
	checkFncache(t, []byte("foo.d/bar.d/file"), "foo.d.hg/bar.d.hg/file")
	checkFncache(t, []byte("tests/legacy-encoding.hg"), "tests/legacy-encoding.hg")
	checkFncache(t, []byte("tests/legacy-encoding.hg/file"), "tests/legacy-encoding.hg.hg/file")

	// direncode applies to directories only, never the basename
	checkFncache(t, []byte("bar.d"), "bar.d")
	checkFncache(t, []byte("bar.i"), "bar.i")
	checkFncache(t, []byte("bar.hg"), "bar.hg")
}

func TestFncacheUppercase(t *testing.T) {
	checkFncache(t, []byte("HELLO/WORLD"), "_h_e_l_l_o/_w_o_r_l_d")
	checkFncache(t, []byte("HELLO.d/WORLD.d"), "_h_e_l_l_o.d.hg/_w_o_r_l_d.d")
}

func TestFncacheUnderscore(t *testing.T) {
	checkFncache(t, []byte("_"), "__")
	checkFncache(t, []byte("_/_"), "__/__")
}

func TestFncacheAuxencode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"com3", "co~6d3"},
		{"lpt9", "lp~749"},
		{"com", "com"},
		{"lpt.3", "lpt.3"},
		{"com3x", "com3x"},
		{"xcom3", "xcom3"},
		{"com0", "com0"},
		{"aux", "au~78"},
		{"auxx", "auxx"},
		{"aux.foo", "au~78.foo"},
		{"con", "co~6e"},
		{"prn", "pr~6e"},
		{"nul", "nu~6c"},
		{" ", "~20"},
		{"aux ", "aux~20"},
		{"foo.", "foo~2e"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checkFncache(t, []byte(tt.input), tt.expected)
		})
	}
}

func TestFncacheDotencode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{".foo", "~2efoo"},
		{" foo", "~20foo"},
		{"foo", "foo"},
		{".", "~2e"},
		{" ", "~20"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := FncacheEncode(mustPath(t, []byte(tt.input)), true)
			if got != tt.expected {
				t.Errorf("FncacheEncode(%q, dotencode) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}

	// without dotencode, leading '.' passes through
	checkFncache(t, []byte(".foo"), ".foo")
}

func TestFncachePrintableSweep(t *testing.T) {
	toencode := []byte("data/abcdefghijklmnopqrstuvwxyz0123456789 !#%&'()+,-.;=[]^`{}")
	expected := "data/abcdefghijklmnopqrstuvwxyz0123456789 !#%&'()+,-.;=[]^`{}"
	checkFncache(t, toencode, expected)
}

func TestFncacheControlByteSweep(t *testing.T) {
	toencode := []byte("data/\x01\x02\x03\x04\x05\x06\x07\x08\t\n\x0b\x0c\r\x0e\x0f\x10\x11\x12\x13\x14\x15\x16\x17\x18\x19\x1a\x1b\x1c\x1d\x1e\x1f")
	expected := "data/~01~02~03~04~05~06~07~08~09~0a~0b~0c~0d~0e~0f~10~11~12~13~14~15~16~17~18~19~1a~1b~1c~1d~1e~1f"
	checkFncache(t, toencode, expected)
}

func TestSimpleEncode(t *testing.T) {
	checkSimple(t, []byte("foo.i/bar.d/bla.hg/hi:world?/HELLO"),
		"foo.i.hg/bar.d.hg/bla.hg.hg/hi~3aworld~3f/_h_e_l_l_o")

	// single element is the basename: no directory suffix, no dot handling
	checkSimple(t, []byte(".arcconfig.i"), ".arcconfig.i")
}

func TestEmptyPath(t *testing.T) {
	if got := SimpleEncode(nil); got != "" {
		t.Errorf("SimpleEncode(empty) = %q", got)
	}
	if got := FncacheEncode(nil, true); got != "" {
		t.Errorf("FncacheEncode(empty) = %q", got)
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{".foo", ""},
		{"foo.", "."},
		{"foo", ""},
		{"foo.txt", ".txt"},
		{"foo.bar.blat", ".blat"},
	}

	for _, tt := range tests {
		if got := string(extension([]byte(tt.input))); got != tt.expected {
			t.Errorf("extension(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestHashedFile(t *testing.T) {
	full := mustPath(t, []byte("asdf/asdf/file.txt"))

	got := hashedFile(full.Dirs(), []byte("file.txt"))
	want := shaOf("asdf/asdf/file.txt")
	if got != want {
		t.Errorf("hashedFile = %v, want %v", got, want)
	}
}

func TestHashedFileDirencodesDirsOnly(t *testing.T) {
	full := mustPath(t, []byte("data/foo.d/file.d"))
	got := hashedFile(full.Dirs(), full.Basename().Bytes())

	// directories are direncode'd for the digest, the basename is raw
	want := shaOf("data/foo.d.hg/file.d")
	if got != want {
		t.Errorf("hashedFile = %v, want %v", got, want)
	}
}

func TestFncacheHashedFallback(t *testing.T) {
	long := strings.Repeat("a", 45)
	raw := []byte("data/" + long + "/" + long + "/" + long + "/the-basename-of-it-all.txt")
	p := mustPath(t, raw)

	got := FncacheEncode(p, false)

	if !strings.HasPrefix(got, "dh/") {
		t.Fatalf("expected dh/ prefix, got %q", got)
	}
	if len(got) > MaxStorePathLen {
		t.Errorf("hashed path length = %d, want <= %d", len(got), MaxStorePathLen)
	}
	if !strings.HasSuffix(got, ".txt") {
		t.Errorf("extension not preserved: %q", got)
	}
	if !strings.Contains(got, shaOf(string(raw)).String()) {
		t.Errorf("sha1 of raw path missing from %q", got)
	}
}

func TestFncacheHashedShortDirs(t *testing.T) {
	long := strings.Repeat("x", 200)
	raw := []byte("data/abcdefghijklm/n/" + long + ".i")
	p := mustPath(t, raw)

	got := FncacheEncode(p, false)

	// first dir is dropped for dh/, the rest truncated to 8 bytes
	if !strings.HasPrefix(got, "dh/abcdefgh/n/") {
		t.Fatalf("short dirs wrong: %q", got)
	}
	if !strings.HasSuffix(got, ".i") {
		t.Errorf("extension not preserved: %q", got)
	}
	if len(got) > MaxStorePathLen {
		t.Errorf("hashed path length = %d, want <= %d", len(got), MaxStorePathLen)
	}
}

func TestFncacheHashedTruncatedDirTrailingDot(t *testing.T) {
	long := strings.Repeat("x", 200)
	// truncating "abcdefg.ext" to 8 bytes leaves "abcdefg." with a
	// trailing dot, which is remapped to '_'
	raw := []byte("data/abcdefg.ext/" + long)
	p := mustPath(t, raw)

	got := FncacheEncode(p, false)
	if !strings.HasPrefix(got, "dh/abcdefg_/") {
		t.Fatalf("trailing dot not remapped: %q", got)
	}
}

func TestFncacheCeilingProperty(t *testing.T) {
	inputs := [][]byte{
		[]byte("a/b"),
		[]byte("data/" + strings.Repeat("z", 300)),
		[]byte(strings.Repeat("Q/", 40) + "end"),
		[]byte("data/" + strings.Repeat("aux/", 30) + "nul"),
	}

	for _, raw := range inputs {
		p := mustPath(t, raw)
		for _, dot := range []bool{false, true} {
			got := FncacheEncode(p, dot)
			if len(got) > MaxStorePathLen && !strings.HasPrefix(got, "dh/") {
				t.Errorf("FncacheEncode(%q, %v) = %d bytes without dh/ prefix", raw, dot, len(got))
			}
			checkOutputBytes(t, got)
		}
	}
}

// checkOutputBytes asserts no byte below 0x20 or above 0x7d appears
// unencoded in the output. The '~' (0x7e) that opens a ~HH escape is
// part of an encoding, not a raw byte.
func checkOutputBytes(t *testing.T, s string) {
	t.Helper()
	for i := 0; i < len(s); i++ {
		if s[i] == '~' && i+2 < len(s) &&
			strings.IndexByte(hexDigits, s[i+1]) >= 0 && strings.IndexByte(hexDigits, s[i+2]) >= 0 {
			i += 2
			continue
		}
		if s[i] < 0x20 || s[i] > 0x7d {
			t.Errorf("raw byte 0x%02x leaked into output %q", s[i], s)
		}
	}
}

func TestNoUnencodedUppercase(t *testing.T) {
	inputs := [][]byte{
		[]byte("MiXeD/CaSe.d/FILE"),
		[]byte("data/UPPER_under__score"),
	}

	for _, raw := range inputs {
		p := mustPath(t, raw)
		for _, out := range []string{SimpleEncode(p), FncacheEncode(p, false)} {
			for i := 0; i < len(out); i++ {
				if out[i] >= 'A' && out[i] <= 'Z' {
					t.Errorf("uppercase leaked into %q", out)
				}
			}
		}
	}
}
