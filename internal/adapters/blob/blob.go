// Package blob stores named byte content on an object store or a local directory
//
// A Sink is a strategy (Staged, Streamed, Buffered) over a Backend (GCS, S3, Local).
// Store reports exactly one outcome; on failure no partial object is made visible
package blob

import (
	"context"
	"io"
	"strings"

	perr "orderexport/internal/platform/errors"
)

// Meta is the object metadata sent with every upload
type Meta struct {
	ContentType     string
	ContentEncoding string
}

// ObjectWriter streams one object; Close commits it and Abort discards it
type ObjectWriter interface {
	io.Writer
	Close() error
	Abort(cause error)
}

// Backend is one durable destination offering the three transfer primitives
type Backend interface {
	// Name is the short backend id, e.g. "gcs"
	Name() string
	// Describe renders the destination for humans, e.g. "GCS bucket orders"
	Describe() string
	// UploadFile transfers a staged file
	UploadFile(ctx context.Context, f io.Reader, name string, meta Meta) error
	// NewWriter opens a streaming upload
	NewWriter(ctx context.Context, name string, meta Meta) (ObjectWriter, error)
	// UploadBuffer hands a complete buffer to the multipart or resumable primitive
	UploadBuffer(ctx context.Context, name string, content []byte, meta Meta) error
}

// Sink durably stores named content
type Sink interface {
	Store(ctx context.Context, name string, content []byte) error
	Describe() string
}

// checkName rejects names that cannot address an object
func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return perr.InvalidArgf("empty object name")
	}
	for seg := range strings.SplitSeq(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return perr.InvalidArgf("invalid object name %q", name)
		}
	}
	return nil
}

func storeErr(err error, b Backend, name string) error {
	return perr.WithOp(perr.Wrapf(err, perr.ErrorCodeStore, "%s store %s", b.Name(), name), "blob.store")
}
