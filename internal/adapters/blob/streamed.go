package blob

import (
	"bytes"
	"context"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Streamed pipes content into the backend's streaming writer
// a failed write aborts the writer so nothing is committed
type Streamed struct {
	Backend     Backend
	ContentType string
	Gzip        bool
}

// NewStreamed returns a streaming sink over b
func NewStreamed(b Backend, contentType string, gz bool) *Streamed {
	if b == nil {
		panic("blob: nil backend")
	}
	return &Streamed{Backend: b, ContentType: contentType, Gzip: gz}
}

func (s *Streamed) Describe() string { return s.Backend.Describe() }

func (s *Streamed) Store(ctx context.Context, name string, content []byte) error {
	if err := checkName(name); err != nil {
		return err
	}

	meta := Meta{ContentType: s.ContentType}
	if s.Gzip {
		meta.ContentEncoding = "gzip"
	}
	w, err := s.Backend.NewWriter(ctx, name, meta)
	if err != nil {
		return storeErr(err, s.Backend, name)
	}

	if err := s.copy(w, content); err != nil {
		w.Abort(err)
		return storeErr(err, s.Backend, name)
	}
	if err := w.Close(); err != nil {
		return storeErr(err, s.Backend, name)
	}
	return nil
}

func (s *Streamed) copy(w io.Writer, content []byte) error {
	src := bytes.NewReader(content)
	if !s.Gzip {
		_, err := io.Copy(w, src)
		return err
	}
	zw, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
	if err != nil {
		return err
	}
	if _, err := io.Copy(zw, src); err != nil {
		return err
	}
	return zw.Close()
}
