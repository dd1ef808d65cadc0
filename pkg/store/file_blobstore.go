package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/utkarsh5026/HgStore/pkg/common/err"
	"github.com/utkarsh5026/HgStore/pkg/common/fileops"
	"github.com/utkarsh5026/HgStore/pkg/fsencode"
	"github.com/utkarsh5026/HgStore/pkg/hgpath"
)

// FileBlobstore stores blobs as zstd-compressed files under a root
// directory. Keys are parsed as repository paths (split on '/', empty
// components dropped) and mapped to file names through the fncache path
// encoding, so each key lands on a name that is safe on
// case-insensitive and reserved-name-restricted filesystems. A key that
// is empty, consists only of '/', or contains NUL is rejected. Writes are
// atomic (temp file + rename); concurrent readers never observe a
// partial blob.
type FileBlobstore struct {
	root    string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewFileBlobstore opens (creating if needed) a blobstore rooted at dir.
func NewFileBlobstore(dir string) (*FileBlobstore, error) {
	if derr := fileops.EnsureDir(dir); derr != nil {
		return nil, storeErr(err.CodeInternal, "open", "create root", derr)
	}

	enc, zerr := zstd.NewWriter(nil)
	if zerr != nil {
		return nil, storeErr(err.CodeInternal, "open", "create zstd encoder", zerr)
	}
	dec, zerr := zstd.NewReader(nil)
	if zerr != nil {
		return nil, storeErr(err.CodeInternal, "open", "create zstd decoder", zerr)
	}

	return &FileBlobstore{root: dir, encoder: enc, decoder: dec}, nil
}

// keyPath maps a blob key to its on-disk location.
func (f *FileBlobstore) keyPath(key string) (string, error) {
	p, perr := hgpath.ParseString(key)
	if perr != nil || p.IsEmpty() {
		return "", storeErr(err.CodeInvalidInput, "key_path", "unusable blob key", perr)
	}
	return filepath.Join(f.root, fsencode.FncacheEncode(p, true)), nil
}

// Get retrieves and decompresses the blob stored under key, or returns
// nil if absent.
func (f *FileBlobstore) Get(ctx context.Context, key string) ([]byte, error) {
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}

	path, perr := f.keyPath(key)
	if perr != nil {
		return nil, perr
	}

	compressed, rerr := os.ReadFile(path)
	if rerr != nil {
		if os.IsNotExist(rerr) {
			return nil, nil
		}
		return nil, storeErr(err.CodeInternal, "get", key, rerr)
	}

	data, derr := f.decoder.DecodeAll(compressed, nil)
	if derr != nil {
		return nil, storeErr(err.CodeCorrupt, "get", key, derr)
	}
	return data, nil
}

// Put compresses and stores data under key.
func (f *FileBlobstore) Put(ctx context.Context, key string, data []byte) error {
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}

	path, perr := f.keyPath(key)
	if perr != nil {
		return perr
	}

	// nested keys and hashed "dh/..." names live in subdirectories
	if derr := fileops.EnsureParentDir(path); derr != nil {
		return storeErr(err.CodeInternal, "put", key, derr)
	}

	compressed := f.encoder.EncodeAll(data, nil)
	if werr := fileops.AtomicWrite(path, compressed, 0644); werr != nil {
		return storeErr(err.CodeInternal, "put", key, werr)
	}
	return nil
}

// Has reports whether a blob exists under key.
func (f *FileBlobstore) Has(ctx context.Context, key string) (bool, error) {
	if cerr := ctx.Err(); cerr != nil {
		return false, cerr
	}

	path, perr := f.keyPath(key)
	if perr != nil {
		return false, perr
	}
	return fileops.Exists(path)
}
