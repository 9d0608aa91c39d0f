// Package s3 provides a rexfs.FileSystem for Amazon S3.
//
//	client, _ := s3.NewClient(ctx, s3.ClientConfig{Region: "eu-central-1"})
//	fsys := s3.New(client, "my-bucket", s3.WithPrefix("dumps/"))
//
// Writes stream through the SDK upload manager (multipart for large files).
// With WithExclusiveCreate the backend mirrors memfs's first-writer-wins
// semantics using conditional writes.
package s3
