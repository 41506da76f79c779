package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStoreRoundTrip(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, err := s.Put(ctx, "deeds/1.pdf", strings.NewReader("%PDF-1.4 test"), -1, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "deeds/1.pdf", key)

	rc, err := s.Get(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))
}

func TestFSStoreExists(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "deeds/missing.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Exists(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Put(ctx, "deeds/here.pdf", strings.NewReader("x"), -1, "")
	require.NoError(t, err)
	ok, err = s.Exists(ctx, "deeds/here.pdf")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFSStorePutEmptyKey(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	_, err = s.Put(context.Background(), "", strings.NewReader("x"), -1, "")
	assert.Error(t, err)
}
