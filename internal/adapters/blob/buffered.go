package blob

import "context"

// Buffered hands the whole buffer to the backend's multipart or resumable upload
type Buffered struct {
	Backend     Backend
	ContentType string
}

// NewBuffered returns a buffered sink over b
func NewBuffered(b Backend, contentType string) *Buffered {
	if b == nil {
		panic("blob: nil backend")
	}
	return &Buffered{Backend: b, ContentType: contentType}
}

func (s *Buffered) Describe() string { return s.Backend.Describe() }

func (s *Buffered) Store(ctx context.Context, name string, content []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := s.Backend.UploadBuffer(ctx, name, content, Meta{ContentType: s.ContentType}); err != nil {
		return storeErr(err, s.Backend, name)
	}
	return nil
}
