package s3

import (
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// UploadConfig tunes the multipart upload manager behind a streaming Create.
type UploadConfig struct {
	PartSize          int64 // bytes per part; 0 keeps the SDK default (5 MiB)
	Concurrency       int   // parts in flight per upload; 0 keeps the SDK default
	EnableChecksum    bool  // attach CRC32C to every upload
	LeavePartsOnError bool  // keep the parts of a failed multipart upload
}

// DefaultUploadConfig uses 8 MiB parts, five in flight, with CRC32C enabled.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:       8 << 20,
		Concurrency:    5,
		EnableChecksum: true,
	}
}

func (c UploadConfig) newUploader(client manager.UploadAPIClient) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		if c.PartSize > 0 {
			u.PartSize = c.PartSize
		}
		if c.Concurrency > 0 {
			u.Concurrency = c.Concurrency
		}
		u.LeavePartsOnError = c.LeavePartsOnError
	})
}

func (c UploadConfig) checksumAlgorithm() types.ChecksumAlgorithm {
	if c.EnableChecksum {
		return types.ChecksumAlgorithmCrc32c
	}
	return ""
}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// crc32c encodes the CRC32C of data the way S3 expects it in
// x-amz-checksum-crc32c: base64 of the big-endian sum.
func crc32c(data []byte) string {
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc32.Checksum(data, castagnoli))
	return base64.StdEncoding.EncodeToString(sum[:])
}
