package fsencode

import (
	"github.com/utkarsh5026/HgStore/pkg/hgpath"
	"github.com/utkarsh5026/HgStore/pkg/node"
)

// Budget constants for the hashed fallback, copied from core Mercurial's
// _hashencode. Each kept directory is truncated to dirPrefixLen bytes.
const dirPrefixLen = 8

// hashedFile computes the SHA-1 that names a hashed path. The digest
// input is the direncode'd directories joined with the raw basename;
// the basename is NOT direncode'd.
func hashedFile(dirs []hgpath.Element, file []byte) node.RawHash {
	var input []byte
	for _, dir := range dirs {
		input = append(input, direncode(dir.Bytes())...)
		input = append(input, '/')
	}
	input = append(input, file...)
	return node.RawHashOf(input)
}

// hashencode produces the "dh/" fallback used when the fncache-encoded
// path would exceed MaxStorePathLen. The result keeps the (encoded)
// extension and as much of the encoded basename as the budget allows,
// and embeds the SHA-1 of the original path so distinct long paths
// cannot collide.
func hashencode(dirs []hgpath.Element, file []byte, dotencode bool) string {
	sha := hashedFile(dirs, file)

	encodeDir := func(elem []byte) []byte {
		return auxencode(lowerencode(direncode(elem)), dotencode)
	}

	// The first directory (usually "data" or "meta") is dropped and
	// replaced by "dh/", but its encoded length still participates in
	// the short-dirs budget.
	prefixLen := 0
	if len(dirs) > 0 {
		prefixLen = len(encodeDir(dirs[0].Bytes()))
	}
	maxShortDirsLen := 8*(dirPrefixLen+1) - prefixLen

	var shortDirs []byte
	shortDirsLen := 0
	for _, elem := range dirs[min(1, len(dirs)):] {
		p := encodeDir(elem.Bytes())
		dir := p[:min(dirPrefixLen, len(p))]
		if n := len(dir); n > 0 && (dir[n-1] == '.' || dir[n-1] == ' ') {
			trimmed := make([]byte, n)
			copy(trimmed, dir[:n-1])
			trimmed[n-1] = '_'
			dir = trimmed
		}

		if shortDirsLen == 0 {
			shortDirsLen = len(dir)
		} else {
			// 1 is for '/'
			t := shortDirsLen + 1 + len(dir)
			if t > maxShortDirsLen {
				break
			}
			shortDirsLen = t
		}
		if len(shortDirs) > 0 {
			shortDirs = append(shortDirs, '/')
		}
		shortDirs = append(shortDirs, dir...)
	}
	if len(shortDirs) > 0 {
		shortDirs = append(shortDirs, '/')
	}

	// The basename is encoded without direncode; the raw basename fed
	// the hash above, the encoded one forms the filler and extension.
	basename := auxencode(lowerencode(file), dotencode)
	ext := extension(basename)
	hexSha := sha.String()

	used := len("dh/") + len(shortDirs) + len(hexSha) + len(ext)
	spaceLeft := MaxStorePathLen - used
	if spaceLeft < 0 {
		spaceLeft = 0
	}
	filler := basename[:min(len(basename), spaceLeft)]

	out := make([]byte, 0, used+len(filler))
	out = append(out, "dh/"...)
	out = append(out, shortDirs...)
	out = append(out, filler...)
	out = append(out, hexSha...)
	out = append(out, ext...)
	return string(out)
}

// extension returns the encoded basename's extension including the
// period. A leading period is not an extension separator.
func extension(basename []byte) []byte {
	for i := len(basename) - 1; i > 0; i-- {
		if basename[i] == '.' {
			return basename[i:]
		}
	}
	return nil
}
