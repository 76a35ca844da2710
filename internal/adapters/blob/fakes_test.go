package blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

// memBackend records committed objects; failures are injected per primitive
type memBackend struct {
	mu       sync.Mutex
	objects  map[string][]byte
	meta     map[string]Meta
	calls    []string
	fileErr  error
	bufErr   error
	writeErr error
	closeErr error
	aborted  int
}

func newMemBackend() *memBackend {
	return &memBackend{objects: map[string][]byte{}, meta: map[string]Meta{}}
}

func (m *memBackend) Name() string     { return "mem" }
func (m *memBackend) Describe() string { return "memory bucket test" }

func (m *memBackend) put(call, name string, b []byte, meta Meta) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	m.objects[name] = b
	m.meta[name] = meta
}

func (m *memBackend) UploadFile(_ context.Context, f io.Reader, name string, meta Meta) error {
	if m.fileErr != nil {
		return m.fileErr
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	m.put("file", name, b, meta)
	return nil
}

func (m *memBackend) UploadBuffer(_ context.Context, name string, content []byte, meta Meta) error {
	if m.bufErr != nil {
		return m.bufErr
	}
	m.put("buffer", name, bytes.Clone(content), meta)
	return nil
}

func (m *memBackend) NewWriter(_ context.Context, name string, meta Meta) (ObjectWriter, error) {
	return &memWriter{m: m, name: name, meta: meta}, nil
}

type memWriter struct {
	m    *memBackend
	name string
	meta Meta
	buf  bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) {
	if w.m.writeErr != nil {
		return 0, w.m.writeErr
	}
	return w.buf.Write(p)
}

func (w *memWriter) Close() error {
	if w.m.closeErr != nil {
		return w.m.closeErr
	}
	w.m.put("stream", w.name, w.buf.Bytes(), w.meta)
	return nil
}

func (w *memWriter) Abort(error) {
	w.m.mu.Lock()
	w.m.aborted++
	w.m.mu.Unlock()
}

var errBoom = errors.New("boom")
