// Package storage uploads report attachments (photos, incident media) to the
// hosted object store. Uploads happen before the owning record is written,
// so a failed upload aborts the create instead of leaving a record pointing
// at a missing object.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	cloudstorage "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"safetysight/store"
)

// Uploader writes objects into the configured bucket.
type Uploader struct {
	bucket *cloudstorage.BucketHandle
	name   string
}

func NewUploader(bucket *cloudstorage.BucketHandle, bucketName string) *Uploader {
	return &Uploader{bucket: bucket, name: bucketName}
}

// Upload streams r into dir/<uuid>-<filename> and returns a public download
// URL. Failures come back as *store.AttachmentUploadError.
func (u *Uploader) Upload(ctx context.Context, dir, filename, contentType string, r io.Reader) (string, error) {
	object := path.Join(dir, uuid.NewString()+"-"+sanitize(filename))

	w := u.bucket.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", &store.AttachmentUploadError{Object: object, Err: err}
	}
	if err := w.Close(); err != nil {
		return "", &store.AttachmentUploadError{Object: object, Err: err}
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.name, object), nil
}

// sanitize keeps object names flat and URL-friendly.
func sanitize(filename string) string {
	base := path.Base(filename)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, base)
}
