package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "https://cdn.example.com",
	})
	require.NoError(t, err)
	return store
}

func TestLocalStorage_SaveGetRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestLocalStorage(t)
	ctx := context.Background()

	err := store.Save(ctx, "resume", "resume/user-1/1.pdf", strings.NewReader("%PDF-1.7 body"), "application/pdf")
	require.NoError(t, err)

	rc, err := store.Get(ctx, "resume", "resume/user-1/1.pdf")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 body", string(data))

	size, err := store.GetSize(ctx, "resume", "resume/user-1/1.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)
}

func TestLocalStorage_SaveOverwrites(t *testing.T) {
	t.Parallel()

	store := newTestLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "resume", "a.txt", strings.NewReader("first"), "text/plain"))
	require.NoError(t, store.Save(ctx, "resume", "a.txt", strings.NewReader("second"), "text/plain"))

	rc, err := store.Get(ctx, "resume", "a.txt")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLocalStorage_ExistsAndDelete(t *testing.T) {
	t.Parallel()

	store := newTestLocalStorage(t)
	ctx := context.Background()

	exists, err := store.Exists(ctx, "resume", "missing.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Save(ctx, "resume", "doc.pdf", strings.NewReader("x"), "application/pdf"))

	exists, err = store.Exists(ctx, "resume", "doc.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "resume", "doc.pdf"))

	exists, err = store.Exists(ctx, "resume", "doc.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing object is not an error.
	require.NoError(t, store.Delete(ctx, "resume", "doc.pdf"))
}

func TestLocalStorage_URLRoundTripsThroughPublicObjectPath(t *testing.T) {
	t.Parallel()

	store := newTestLocalStorage(t)
	ctx := context.Background()

	url, err := store.GetURL(ctx, "resume", "resume/user-1/1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/object/public/resume/resume/user-1/1.pdf", url)

	assert.Equal(t, "resume/user-1/1.pdf", PublicObjectPath(url, "resume"))
	assert.Equal(t, "", PublicObjectPath(url, "avatars"))
}

func TestLocalStorage_SignedURLFallsBackToPublic(t *testing.T) {
	t.Parallel()

	store := newTestLocalStorage(t)
	ctx := context.Background()

	signed, err := store.GetSignedURL(ctx, "resume", "a.pdf", time.Hour)
	require.NoError(t, err)
	public, err := store.GetURL(ctx, "resume", "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, public, signed)
}
