// Package store provides access to changeset data held in a blob-backed
// object store.
//
// The Blobstore interface is the only capability the codecs consume: a
// keyed fetch returning optional bytes. Three backends are provided:
// in-memory (tests, composition), filesystem (keys mapped through the
// fncache path encoding so any key is safe on disk) and bbolt. Node
// records and changeset blobs are layered on top of whichever backend
// the caller picks.
package store

import (
	"context"

	"github.com/utkarsh5026/HgStore/pkg/common/err"
)

const pkgName = "store"

// Error codes specific to this package.
const (
	// CodeNodeMissing indicates the node record for a hash is absent
	CodeNodeMissing = "NODE_MISSING"

	// CodeBlobMissing indicates a content blob referenced by a node
	// record is absent
	CodeBlobMissing = "BLOB_MISSING"

	// CodeBadRecord indicates a fetched record could not be decoded
	CodeBadRecord = "BAD_RECORD"
)

// Blobstore is the external object-store contract.
//
// Get returns (nil, nil) for a missing key; callers that require the key
// translate that into their own missing-resource error. Implementations
// must be safe for concurrent use and must not retain or mutate the
// byte slices passed to Put.
type Blobstore interface {
	// Get retrieves the blob stored under key, or nil if absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data under key, overwriting any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Has reports whether a blob exists under key.
	Has(ctx context.Context, key string) (bool, error)
}

func storeErr(code, op, message string, cause error) error {
	return err.New(pkgName, code, op, message, cause)
}
