// Package s3 stores run reports in S3-compatible object storage.
//
// The client works against AWS S3 and path-style S3-compatible services such
// as MinIO or Hetzner Object Storage.
package s3
