package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/HgStore/pkg/changeset"
	"github.com/utkarsh5026/HgStore/pkg/common/err"
	"github.com/utkarsh5026/HgStore/pkg/node"
	"github.com/utkarsh5026/HgStore/pkg/store"
)

func TestNodeKeyFormat(t *testing.T) {
	id := node.HashOf([]byte("x"))
	assert.Equal(t, "node-"+id.String()+".bincode", store.NodeKey(id))
}

func TestRawNodeBlobRoundTrip(t *testing.T) {
	rec := &store.RawNodeBlob{
		Parents: node.NewParents(node.HashOf([]byte("p1")), node.HashOf([]byte("p2"))),
		Blob:    node.HashOf([]byte("content")),
	}

	data, encErr := rec.Encode()
	require.NoError(t, encErr)

	decoded, decErr := store.DecodeNodeBlob(data)
	require.NoError(t, decErr)
	assert.Equal(t, rec, decoded)
}

func TestDecodeNodeBlobRejectsGarbage(t *testing.T) {
	_, decErr := store.DecodeNodeBlob([]byte("short"))
	require.Error(t, decErr)
	assert.True(t, err.IsCode(decErr, store.CodeBadRecord))

	rec := &store.RawNodeBlob{Parents: node.NoParents(), Blob: node.NullHash()}
	data, _ := rec.Encode()
	data[0] = 99
	_, decErr = store.DecodeNodeBlob(data)
	assert.True(t, err.IsCode(decErr, store.CodeBadRecord))
}

func TestGetNodeMissing(t *testing.T) {
	ctx := context.Background()
	bs := store.NewMemoryBlobstore()

	id := node.HashOf([]byte("nowhere"))
	_, getErr := store.GetNode(ctx, bs, id)
	require.Error(t, getErr)
	assert.True(t, err.IsCode(getErr, store.CodeNodeMissing))
	assert.Contains(t, getErr.Error(), id.String())
}

func TestPutGetChangeset(t *testing.T) {
	ctx := context.Background()
	bs := store.NewMemoryBlobstore()

	cs := changeset.NewNull()
	cs.User = []byte("Author <a@b.c>")
	cs.Time = changeset.Time{Time: 1234567890, TZ: -3600}
	cs.Comments = []byte("stored through the blobstore")

	id := node.HashOf([]byte("some node id"))
	require.NoError(t, store.PutChangeset(ctx, bs, id, cs))

	got, getErr := store.GetChangeset(ctx, bs, id)
	require.NoError(t, getErr)
	assert.True(t, got.Equal(cs), "changeset diverged through store round trip")
}

func TestGetChangesetBlobMissing(t *testing.T) {
	ctx := context.Background()
	bs := store.NewMemoryBlobstore()

	// node record present, content blob absent
	id := node.HashOf([]byte("id"))
	rec := &store.RawNodeBlob{Parents: node.NoParents(), Blob: node.HashOf([]byte("gone"))}
	require.NoError(t, store.PutNode(ctx, bs, id, rec))

	_, getErr := store.GetChangeset(ctx, bs, id)
	require.Error(t, getErr)
	assert.True(t, err.IsCode(getErr, store.CodeBlobMissing))
}

func TestFetchNodes(t *testing.T) {
	ctx := context.Background()
	bs := store.NewMemoryBlobstore()

	var ids []node.Hash
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		id := node.HashOf([]byte(name))
		rec := &store.RawNodeBlob{
			Parents: node.NoParents(),
			Blob:    node.HashOf([]byte(name + "-content")),
		}
		require.NoError(t, store.PutNode(ctx, bs, id, rec))
		ids = append(ids, id)
	}

	got, fetchErr := store.FetchNodes(ctx, bs, ids)
	require.NoError(t, fetchErr)
	require.Len(t, got, len(ids))
	for _, id := range ids {
		assert.Contains(t, got, id)
	}
}

func TestFetchNodesPropagatesMissing(t *testing.T) {
	ctx := context.Background()
	bs := store.NewMemoryBlobstore()

	present := node.HashOf([]byte("present"))
	require.NoError(t, store.PutNode(ctx, bs, present,
		&store.RawNodeBlob{Parents: node.NoParents(), Blob: node.NullHash()}))

	_, fetchErr := store.FetchNodes(ctx, bs, []node.Hash{present, node.HashOf([]byte("absent"))})
	require.Error(t, fetchErr)
	assert.True(t, err.IsCode(fetchErr, store.CodeNodeMissing))
}
