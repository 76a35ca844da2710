package blob

import (
	"bytes"
	"context"
	"io"

	perr "orderexport/internal/platform/errors"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// resumableChunk is the chunk size for buffered uploads; 0 disables resumable uploads
const resumableChunk = 8 << 20

// gcsObjects opens object writers; *storage.BucketHandle satisfies it through gcsBucket
type gcsObjects interface {
	Writer(ctx context.Context, name string, meta Meta, chunk int) io.WriteCloser
}

// GCS uploads to a Google Cloud Storage bucket
type GCS struct {
	bucket  string
	objects gcsObjects
	client  *storage.Client
}

// GCSOptions configures NewGCS
type GCSOptions struct {
	Bucket          string
	CredentialsFile string
	Endpoint        string
}

// NewGCS builds a client from application default credentials or CredentialsFile
func NewGCS(ctx context.Context, o GCSOptions) (*GCS, error) {
	var opts []option.ClientOption
	if o.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}
	if o.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(o.Endpoint))
	}
	c, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "gcs client")
	}
	return &GCS{bucket: o.Bucket, client: c, objects: gcsBucket{h: c.Bucket(o.Bucket)}}, nil
}

func (g *GCS) Name() string     { return "gcs" }
func (g *GCS) Describe() string { return "GCS bucket " + g.bucket }

// Close releases the underlying client
func (g *GCS) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *GCS) UploadFile(ctx context.Context, f io.Reader, name string, meta Meta) error {
	return g.copy(ctx, f, name, meta, 0)
}

func (g *GCS) NewWriter(ctx context.Context, name string, meta Meta) (ObjectWriter, error) {
	ctx, cancel := context.WithCancel(ctx)
	return &gcsWriter{w: g.objects.Writer(ctx, name, meta, 0), cancel: cancel}, nil
}

func (g *GCS) UploadBuffer(ctx context.Context, name string, content []byte, meta Meta) error {
	return g.copy(ctx, bytes.NewReader(content), name, meta, resumableChunk)
}

func (g *GCS) copy(ctx context.Context, r io.Reader, name string, meta Meta, chunk int) error {
	ctx, cancel := context.WithCancel(ctx)
	w := &gcsWriter{w: g.objects.Writer(ctx, name, meta, chunk), cancel: cancel}
	if _, err := io.Copy(w, r); err != nil {
		w.Abort(err)
		return err
	}
	return w.Close()
}

// gcsWriter commits on Close; Abort cancels the upload context first so the object is never finalized
type gcsWriter struct {
	w      io.WriteCloser
	cancel context.CancelFunc
}

func (w *gcsWriter) Write(p []byte) (int, error) { return w.w.Write(p) }

func (w *gcsWriter) Close() error {
	defer w.cancel()
	return w.w.Close()
}

func (w *gcsWriter) Abort(error) {
	w.cancel()
	_ = w.w.Close()
}

type gcsBucket struct{ h *storage.BucketHandle }

func (b gcsBucket) Writer(ctx context.Context, name string, meta Meta, chunk int) io.WriteCloser {
	w := b.h.Object(name).NewWriter(ctx)
	w.ContentType = meta.ContentType
	w.ContentEncoding = meta.ContentEncoding
	w.ChunkSize = chunk
	return w
}
