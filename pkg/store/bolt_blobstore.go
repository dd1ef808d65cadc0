package store

import (
	"context"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"go.etcd.io/bbolt"

	"github.com/utkarsh5026/HgStore/pkg/common/err"
)

// bucketBlobs holds every record; a record is an 8-byte xxhash64 of the
// value followed by the value itself.
var bucketBlobs = []byte("blobs")

const checksumLen = 8

// BoltBlobstore is a Blobstore backed by a single-file bbolt database.
// Each stored value carries an xxhash64 checksum verified on read, so a
// torn page or bit rot surfaces as a CORRUPT error instead of silently
// feeding bad bytes to the codecs.
type BoltBlobstore struct {
	db *bbolt.DB
}

// OpenBoltBlobstore opens (creating if needed) the database at path.
func OpenBoltBlobstore(path string) (*BoltBlobstore, error) {
	db, oerr := bbolt.Open(path, 0666, nil)
	if oerr != nil {
		return nil, storeErr(err.CodeInternal, "open", path, oerr)
	}

	if uerr := db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucketBlobs)
		return e
	}); uerr != nil {
		_ = db.Close()
		return nil, storeErr(err.CodeInternal, "open", "create bucket", uerr)
	}

	return &BoltBlobstore{db: db}, nil
}

// Close releases the database file.
func (b *BoltBlobstore) Close() error {
	return b.db.Close()
}

// Get retrieves the blob stored under key, or nil if absent. A record
// whose checksum does not match its value is reported as corrupt.
func (b *BoltBlobstore) Get(ctx context.Context, key string) ([]byte, error) {
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}

	var out []byte
	verr := b.db.View(func(tx *bbolt.Tx) error {
		record := tx.Bucket(bucketBlobs).Get([]byte(key))
		if record == nil {
			return nil
		}
		if len(record) < checksumLen {
			return storeErr(err.CodeCorrupt, "get", key, nil)
		}

		want := binary.BigEndian.Uint64(record[:checksumLen])
		value := record[checksumLen:]
		if xxhash.Sum64(value) != want {
			return storeErr(err.CodeCorrupt, "get", key, nil)
		}

		// record bytes are only valid inside the transaction
		out = make([]byte, len(value))
		copy(out, value)
		return nil
	})
	if verr != nil {
		return nil, verr
	}
	return out, nil
}

// Put stores data under key.
func (b *BoltBlobstore) Put(ctx context.Context, key string, data []byte) error {
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}

	record := make([]byte, checksumLen+len(data))
	binary.BigEndian.PutUint64(record[:checksumLen], xxhash.Sum64(data))
	copy(record[checksumLen:], data)

	uerr := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketBlobs).Put([]byte(key), record)
	})
	if uerr != nil {
		return storeErr(err.CodeInternal, "put", key, uerr)
	}
	return nil
}

// Has reports whether a blob exists under key.
func (b *BoltBlobstore) Has(ctx context.Context, key string) (bool, error) {
	if cerr := ctx.Err(); cerr != nil {
		return false, cerr
	}

	var ok bool
	verr := b.db.View(func(tx *bbolt.Tx) error {
		ok = tx.Bucket(bucketBlobs).Get([]byte(key)) != nil
		return nil
	})
	if verr != nil {
		return false, storeErr(err.CodeInternal, "has", key, verr)
	}
	return ok, nil
}
