package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rexfs"
	"github.com/hupe1980/rexfs/testutil"
)

// TestFS_Integration requires a running MinIO instance.
// Skip if not available.
func TestFS_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-rexfs"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Check if MinIO is reachable
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	prefix := fmt.Sprintf("test-%d/", time.Now().UnixNano())
	var logs bytes.Buffer
	logger := rexfs.NewLogger(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	fsys := New(client, bucket, WithPrefix(prefix), WithStatRetries(0), WithLogger(logger))

	_, err = fsys.Open("missing.bin")
	assert.ErrorIs(t, err, rexfs.ErrNotFound)

	data := testutil.Pattern(64 * 1024)
	w, err := fsys.Create("data.bin")
	require.NoError(t, err)
	for _, chunk := range testutil.Chunks(data, 10_000) {
		_, err := w.Write(chunk)
		require.NoError(t, err)
	}
	assert.NotContains(t, logs.String(), "create completed")
	require.NoError(t, w.Close())
	assert.Contains(t, logs.String(), "create completed")

	r, err := fsys.Open("data.bin")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, data, got)

	// Create overwrites.
	require.NoError(t, rexfs.WriteFile(fsys, "data.bin", []byte("short")))
	got, err = rexfs.ReadFile(fsys, "data.bin")
	require.NoError(t, err)
	assert.Equal(t, "short", string(got))

	require.NoError(t, fsys.Remove(context.Background(), "data.bin"))
	require.NoError(t, fsys.Remove(context.Background(), "data.bin"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
}
