package blob

import (
	"context"
	"os"

	perr "orderexport/internal/platform/errors"
	"orderexport/internal/platform/logger"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
)

// Staged writes content to a scratch file, then hands the file to the backend
// There is no atomicity between the two steps; the scratch file is removed afterwards
type Staged struct {
	Backend     Backend
	Fs          afero.Fs
	Dir         string
	ContentType string
	Gzip        bool
}

// NewStaged stages under dir on the OS filesystem
func NewStaged(b Backend, dir, contentType string, gz bool) *Staged {
	if b == nil {
		panic("blob: nil backend")
	}
	if dir == "" {
		dir = os.TempDir()
	}
	return &Staged{Backend: b, Fs: afero.NewOsFs(), Dir: dir, ContentType: contentType, Gzip: gz}
}

func (s *Staged) Describe() string { return s.Backend.Describe() }

// Store stages then uploads; scratch failures are Stage errors, upload failures are Store errors
func (s *Staged) Store(ctx context.Context, name string, content []byte) error {
	if err := checkName(name); err != nil {
		return err
	}

	path, err := s.stage(content)
	if err != nil {
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeStage, "stage scratch file"), "blob.stage")
	}
	defer func() {
		if rerr := s.Fs.Remove(path); rerr != nil {
			logger.C(ctx).Warn().Err(rerr).Str("path", path).Msg("scratch cleanup failed")
		}
	}()

	f, err := s.Fs.Open(path)
	if err != nil {
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeStage, "reopen scratch file"), "blob.stage")
	}
	defer f.Close()

	meta := Meta{ContentType: s.ContentType}
	if s.Gzip {
		meta.ContentEncoding = "gzip"
	}
	if err := s.Backend.UploadFile(ctx, f, name, meta); err != nil {
		return storeErr(err, s.Backend, name)
	}
	return nil
}

// stage writes content, gzipped when enabled, into a fresh scratch file
func (s *Staged) stage(content []byte) (string, error) {
	if err := s.Fs.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	f, err := afero.TempFile(s.Fs, s.Dir, "orders-*.csv")
	if err != nil {
		return "", err
	}
	path := f.Name()

	werr := writeContent(f, content, s.Gzip)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = s.Fs.Remove(path)
		return "", werr
	}
	return path, nil
}

func writeContent(f afero.File, content []byte, gz bool) error {
	if !gz {
		_, err := f.Write(content)
		return err
	}
	zw, err := gzip.NewWriterLevel(f, gzip.BestSpeed)
	if err != nil {
		return err
	}
	if _, err := zw.Write(content); err != nil {
		return err
	}
	return zw.Close()
}
