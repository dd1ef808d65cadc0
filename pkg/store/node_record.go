package store

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/HgStore/pkg/changeset"
	"github.com/utkarsh5026/HgStore/pkg/common/err"
	"github.com/utkarsh5026/HgStore/pkg/node"
)

// NodeKey is the blob key holding the node record for a hash.
func NodeKey(id node.Hash) string {
	return "node-" + id.String() + ".bincode"
}

// BlobKey is the blob key holding raw content addressed by its own hash.
func BlobKey(h node.Hash) string {
	return "blob-" + h.String()
}

// RawNodeBlob is the stored record for a node: its parents and the hash
// of the content blob.
type RawNodeBlob struct {
	Parents node.Parents
	Blob    node.Hash
}

// Fixed binary layout: a version byte, then the two parent hashes and
// the content-blob hash as raw 20-byte values.
const (
	nodeRecordVersion = 1
	nodeRecordLen     = 1 + 3*node.RawLength
)

// Encode serializes the record.
func (r *RawNodeBlob) Encode() ([]byte, error) {
	out := make([]byte, 0, nodeRecordLen)
	out = append(out, nodeRecordVersion)

	for _, h := range []node.Hash{r.Parents.P1, r.Parents.P2, r.Blob} {
		raw, rerr := h.Raw()
		if rerr != nil {
			return nil, storeErr(err.CodeInvalidInput, "encode_node", h.String(), rerr)
		}
		out = append(out, raw[:]...)
	}

	return out, nil
}

// DecodeNodeBlob deserializes a node record.
func DecodeNodeBlob(data []byte) (*RawNodeBlob, error) {
	if len(data) != nodeRecordLen {
		return nil, storeErr(CodeBadRecord, "decode_node", "wrong record length", nil)
	}
	if data[0] != nodeRecordVersion {
		return nil, storeErr(CodeBadRecord, "decode_node", "unknown record version", nil)
	}

	hashes := make([]node.Hash, 3)
	for i := range hashes {
		var raw node.RawHash
		copy(raw[:], data[1+i*node.RawLength:1+(i+1)*node.RawLength])
		hashes[i] = raw.Hex()
	}

	return &RawNodeBlob{
		Parents: node.Parents{P1: hashes[0], P2: hashes[1]},
		Blob:    hashes[2],
	}, nil
}

// GetNode fetches and decodes the node record for a hash. A missing key
// surfaces as a NODE_MISSING error carrying the hash.
func GetNode(ctx context.Context, bs Blobstore, id node.Hash) (*RawNodeBlob, error) {
	data, gerr := bs.Get(ctx, NodeKey(id))
	if gerr != nil {
		return nil, gerr
	}
	if data == nil {
		return nil, storeErr(CodeNodeMissing, "get_node", id.String(), nil)
	}
	return DecodeNodeBlob(data)
}

// PutNode stores the node record for a hash.
func PutNode(ctx context.Context, bs Blobstore, id node.Hash, record *RawNodeBlob) error {
	data, eerr := record.Encode()
	if eerr != nil {
		return eerr
	}
	return bs.Put(ctx, NodeKey(id), data)
}

// PutBlob stores raw content under its own hash and returns that hash.
func PutBlob(ctx context.Context, bs Blobstore, data []byte) (node.Hash, error) {
	h := node.HashOf(data)
	if perr := bs.Put(ctx, BlobKey(h), data); perr != nil {
		return "", perr
	}
	return h, nil
}

// GetChangeset resolves a node hash to its parsed changeset: node
// record, then content blob, then the changeset codec with the stored
// parents attached.
func GetChangeset(ctx context.Context, bs Blobstore, id node.Hash) (*changeset.Changeset, error) {
	rec, nerr := GetNode(ctx, bs, id)
	if nerr != nil {
		return nil, nerr
	}

	data, gerr := bs.Get(ctx, BlobKey(rec.Blob))
	if gerr != nil {
		return nil, gerr
	}
	if data == nil {
		return nil, storeErr(CodeBlobMissing, "get_changeset", rec.Blob.String(), nil)
	}

	return changeset.Parse(data, rec.Parents)
}

// PutChangeset stores a changeset's serialized bytes and node record
// under the given node hash. The hash itself is computed by the caller;
// this layer only reproduces the bytes the hash digests.
func PutChangeset(ctx context.Context, bs Blobstore, id node.Hash, cs *changeset.Changeset) error {
	blobHash, perr := PutBlob(ctx, bs, cs.Bytes())
	if perr != nil {
		return perr
	}
	return PutNode(ctx, bs, id, &RawNodeBlob{Parents: cs.Parents, Blob: blobHash})
}

// fetchConcurrency bounds the parallel fetches in FetchNodes.
const fetchConcurrency = 8

// FetchNodes fetches node records for many hashes concurrently. The
// first failing fetch cancels the rest and is returned.
func FetchNodes(ctx context.Context, bs Blobstore, ids []node.Hash) (map[node.Hash]*RawNodeBlob, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	var mu sync.Mutex
	out := make(map[node.Hash]*RawNodeBlob, len(ids))

	for _, id := range ids {
		g.Go(func() error {
			rec, ferr := GetNode(gctx, bs, id)
			if ferr != nil {
				return ferr
			}

			mu.Lock()
			out[id] = rec
			mu.Unlock()
			return nil
		})
	}

	if werr := g.Wait(); werr != nil {
		return nil, werr
	}
	return out, nil
}
