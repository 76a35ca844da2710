package blob

import (
	"bytes"
	"context"
	"io"

	perr "orderexport/internal/platform/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Uploader is the manager.Uploader surface S3 needs
type s3Uploader interface {
	Upload(ctx context.Context, in *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3 uploads to an S3 or S3-compatible bucket through the multipart manager
type S3 struct {
	bucket   string
	uploader s3Uploader
}

// S3Options configures NewS3
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string // path-style endpoint for S3-compatible stores
	AccessKey string
	SecretKey string
	PartSize  int64
}

// NewS3 loads the default aws config chain, overridden by static keys when both are set
func NewS3(ctx context.Context, o S3Options) (*S3, error) {
	var lo []func(*awsconfig.LoadOptions) error
	if o.Region != "" {
		lo = append(lo, awsconfig.WithRegion(o.Region))
	}
	if o.AccessKey != "" && o.SecretKey != "" {
		lo = append(lo, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, lo...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "aws config")
	}

	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	})
	up := manager.NewUploader(client, func(u *manager.Uploader) {
		if o.PartSize >= manager.MinUploadPartSize {
			u.PartSize = o.PartSize
		}
	})
	return &S3{bucket: o.Bucket, uploader: up}, nil
}

func (s *S3) Name() string     { return "s3" }
func (s *S3) Describe() string { return "S3 bucket " + s.bucket }

func (s *S3) UploadFile(ctx context.Context, f io.Reader, name string, meta Meta) error {
	_, err := s.uploader.Upload(ctx, s.input(name, f, meta))
	return err
}

func (s *S3) UploadBuffer(ctx context.Context, name string, content []byte, meta Meta) error {
	_, err := s.uploader.Upload(ctx, s.input(name, bytes.NewReader(content), meta))
	return err
}

// NewWriter feeds the uploader through a pipe; Close waits for the upload result
func (s *S3) NewWriter(ctx context.Context, name string, meta Meta) (ObjectWriter, error) {
	pr, pw := io.Pipe()
	w := &s3Writer{pw: pw, done: make(chan error, 1)}
	go func() {
		_, err := s.uploader.Upload(ctx, s.input(name, pr, meta))
		_ = pr.CloseWithError(err)
		w.done <- err
	}()
	return w, nil
}

func (s *S3) input(name string, body io.Reader, meta Meta) *s3.PutObjectInput {
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
		Body:   body,
	}
	if meta.ContentType != "" {
		in.ContentType = aws.String(meta.ContentType)
	}
	if meta.ContentEncoding != "" {
		in.ContentEncoding = aws.String(meta.ContentEncoding)
	}
	return in
}

// s3Writer fails the pipe on Abort, which makes the uploader abandon the object
type s3Writer struct {
	pw   *io.PipeWriter
	done chan error
}

func (w *s3Writer) Write(p []byte) (int, error) { return w.pw.Write(p) }

func (w *s3Writer) Close() error {
	_ = w.pw.Close()
	return <-w.done
}

func (w *s3Writer) Abort(cause error) {
	if cause == nil {
		cause = io.ErrClosedPipe
	}
	_ = w.pw.CloseWithError(cause)
	<-w.done
}
