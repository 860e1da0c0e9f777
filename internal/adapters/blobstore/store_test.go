package blobstore

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-admin-service/internal/core/domain"
)

func TestFileStorePutOpenRelease(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir(), 0)
	require.NoError(t, err)

	up, err := store.Put(ctx, "front.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.NotEmpty(t, up.BlobID)
	assert.Equal(t, "front.jpg", up.Name)
	assert.Equal(t, "image/jpeg", up.ContentType)
	assert.Equal(t, int64(10), up.Size)

	rc, err := store.Open(ctx, up.BlobID)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, store.Release(ctx, up.BlobID))
	require.NoError(t, store.Release(ctx, up.BlobID))
	assert.Equal(t, 0, store.Len())

	_, err = os.Stat(store.path(up.BlobID))
	assert.True(t, os.IsNotExist(err))

	_, err = store.Open(ctx, up.BlobID)
	assert.ErrorIs(t, err, domain.ErrBlobNotFound)
}

func TestFileStoreSizeLimit(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), 4)
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "big.mp4", "video/mp4", strings.NewReader("12345"))
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Equal(t, 0, store.Len())

	entries, err := os.ReadDir(store.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = store.Put(context.Background(), "ok.mp4", "video/mp4", strings.NewReader("1234"))
	assert.NoError(t, err)
}

func TestFileStoreCloseReleasesEverything(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := store.Put(context.Background(), "f", "image/png", strings.NewReader("x"))
		require.NoError(t, err)
	}
	require.NoError(t, store.Close())
	assert.Equal(t, 0, store.Len())

	entries, err := os.ReadDir(store.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
