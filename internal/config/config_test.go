package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rexfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, 16, cfg.DumpWidth)
	assert.Empty(t, cfg.Backends)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Setenv("REXFS_TEST_SECRET", "s3cr3t")

	path := writeConfig(t, `
log_level: debug
parallelism: 8
backends:
  dumps:
    type: local
    root: /var/dumps
    compress: zstd
    rate_limit: 1048576
  archive:
    type: minio
    endpoint: localhost:9000
    access_key: minioadmin
    secret_key: ${REXFS_TEST_SECRET}
    bucket: archive
    prefix: rex/
  aws:
    type: s3
    region: eu-central-1
    bucket: my-bucket
    exclusive_create: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "default kept")
	assert.Equal(t, 8, cfg.Parallelism)
	assert.Equal(t, 16, cfg.DumpWidth, "default kept")
	assert.Equal(t, []string{"archive", "aws", "dumps"}, cfg.Names())

	dumps, ok := cfg.Backend("dumps")
	require.True(t, ok)
	assert.Equal(t, TypeLocal, dumps.Type)
	assert.Equal(t, "zstd", dumps.Compress)
	assert.Equal(t, int64(1048576), dumps.RateLimit)

	archive, _ := cfg.Backend("archive")
	assert.Equal(t, "s3cr3t", archive.SecretKey)
	assert.Equal(t, "rex/", archive.Prefix)

	aws, _ := cfg.Backend("aws")
	assert.True(t, aws.ExclusiveCreate)

	_, ok = cfg.Backend("nope")
	assert.False(t, ok)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, "backends: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		backend Backend
		wantErr bool
	}{
		{"local", Backend{Type: TypeLocal, Root: "/tmp"}, false},
		{"local with bucket", Backend{Type: TypeLocal, Bucket: "b"}, true},
		{"minio", Backend{Type: TypeMinIO, Endpoint: "h:9000", Bucket: "b"}, false},
		{"minio without endpoint", Backend{Type: TypeMinIO, Bucket: "b"}, true},
		{"minio without bucket", Backend{Type: TypeMinIO, Endpoint: "h:9000"}, true},
		{"s3", Backend{Type: TypeS3, Bucket: "b", ExclusiveCreate: true}, false},
		{"s3 without bucket", Backend{Type: TypeS3}, true},
		{"exclusive on local", Backend{Type: TypeLocal, ExclusiveCreate: true}, true},
		{"unknown type", Backend{Type: "ftp"}, true},
		{"lz4", Backend{Type: TypeLocal, Compress: "lz4"}, false},
		{"bad codec", Backend{Type: TypeLocal, Compress: "brotli"}, true},
		{"negative rate", Backend{Type: TypeLocal, RateLimit: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.Backends["b"] = tt.backend
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_Globals(t *testing.T) {
	cfg := Defaults()
	cfg.Parallelism = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = Defaults()
	cfg.DumpWidth = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = Defaults()
	cfg.LogFormat = "xml"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}
