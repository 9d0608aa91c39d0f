// Package minio provides a rexfs.FileSystem for MinIO and other S3-compatible stores.
//
//	client, _ := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	fsys := rexminio.New(client, "dumps", rexminio.WithPrefix("rex/"))
package minio
