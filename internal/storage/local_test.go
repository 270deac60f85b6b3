package storage

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Save(t *testing.T) {
	store, err := NewLocalBlobStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first, err := store.Save(ctx, []byte("one"), "contract v1.pdf")
	require.NoError(t, err)
	second, err := store.Save(ctx, []byte("two"), "contract v1.pdf")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "documents/"))
	assert.True(t, strings.HasSuffix(first, "_contract_v1.pdf"))

	data, err := os.ReadFile(store.FilePath(first))
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestLocalBlobStore_CancelledContext(t *testing.T) {
	store, err := NewLocalBlobStore(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, []byte("x"), "a.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "passwd", sanitizeName("../../etc/passwd"))
	assert.Equal(t, "evil.pdf", sanitizeName(`C:\tmp\evil.pdf`))
	assert.Equal(t, "file", sanitizeName(""))
	assert.Equal(t, "a_b.pdf", sanitizeName("a b.pdf"))
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(context.Background(), Config{Type: "s3"})
	assert.Error(t, err)
}
