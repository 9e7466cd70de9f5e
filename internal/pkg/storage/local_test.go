package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)

	path, err := s.Upload(ctx, strings.NewReader("medical note"), "justifications/emp/2024-03-05/a.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "justifications/emp/2024-03-05/a.pdf", path)

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Download(ctx, path)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "medical note", string(body))

	url, err := s.GetURL(ctx, path, 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/justifications/emp/2024-03-05/a.pdf", url)

	require.NoError(t, s.Delete(ctx, path))
	require.NoError(t, s.Delete(ctx, path))

	_, err = s.Download(ctx, path)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalStorage_TraversalStaysInsideBase(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://x")
	require.NoError(t, err)

	path, err := s.Upload(ctx, strings.NewReader("x"), "../../etc/evil.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "etc/evil.txt", path)

	_, err = s.Upload(ctx, strings.NewReader("x"), "..", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
