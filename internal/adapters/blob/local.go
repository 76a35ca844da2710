package blob

import (
	"bytes"
	"context"
	"io"
	"path/filepath"

	perr "orderexport/internal/platform/errors"

	"github.com/spf13/afero"
)

// Local stores objects as files under Root
// each object is written to a temp file in its final directory and renamed into place
// Content-Encoding is not recorded, so callers should not gzip for Local
type Local struct {
	Fs   afero.Fs
	Root string
}

// NewLocal returns a Local backend on the OS filesystem
func NewLocal(root string) (*Local, error) {
	if root == "" {
		return nil, perr.Configf("local backend requires a root directory")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "resolve local root")
	}
	return &Local{Fs: afero.NewOsFs(), Root: abs}, nil
}

func (l *Local) Name() string     { return "local" }
func (l *Local) Describe() string { return "local directory " + l.Root }

func (l *Local) UploadFile(_ context.Context, f io.Reader, name string, _ Meta) error {
	w, err := l.open(name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, f); err != nil {
		w.Abort(err)
		return err
	}
	return w.Close()
}

func (l *Local) NewWriter(_ context.Context, name string, _ Meta) (ObjectWriter, error) {
	return l.open(name)
}

func (l *Local) UploadBuffer(ctx context.Context, name string, content []byte, meta Meta) error {
	return l.UploadFile(ctx, bytes.NewReader(content), name, meta)
}

func (l *Local) open(name string) (*localWriter, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	final := filepath.Join(l.Root, filepath.FromSlash(name))
	dir := filepath.Dir(final)
	if err := l.Fs.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	tmp, err := afero.TempFile(l.Fs, dir, "."+filepath.Base(final)+".*")
	if err != nil {
		return nil, err
	}
	return &localWriter{fs: l.Fs, f: tmp, final: final}, nil
}

type localWriter struct {
	fs    afero.Fs
	f     afero.File
	final string
	done  bool
}

func (w *localWriter) Write(p []byte) (int, error) { return w.f.Write(p) }

// Close syncs the temp file and renames it over the final path
func (w *localWriter) Close() error {
	if w.done {
		return nil
	}
	w.done = true
	tmp := w.f.Name()
	if err := w.f.Sync(); err != nil {
		_ = w.f.Close()
		_ = w.fs.Remove(tmp)
		return err
	}
	if err := w.f.Close(); err != nil {
		_ = w.fs.Remove(tmp)
		return err
	}
	if err := w.fs.Rename(tmp, w.final); err != nil {
		_ = w.fs.Remove(tmp)
		return err
	}
	return nil
}

// Abort drops the temp file; the final path is untouched
func (w *localWriter) Abort(error) {
	if w.done {
		return
	}
	w.done = true
	_ = w.f.Close()
	_ = w.fs.Remove(w.f.Name())
}
