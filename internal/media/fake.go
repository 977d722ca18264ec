package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"
)

// Fake is an in-memory Delegate that records every call.
type Fake struct {
	mu sync.Mutex

	// UploadErr and DeleteErr, when set, are returned by every call.
	UploadErr error
	DeleteErr error

	Uploaded []string
	Deleted  []string
	seq      int
}

var _ Delegate = (*Fake)(nil)

// NewFake returns an empty recorder.
func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Upload(_ context.Context, file *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.UploadErr != nil {
		return "", uploadFailed(f.UploadErr)
	}
	f.seq++
	u := fmt.Sprintf("https://res.cloudinary.com/fake/image/upload/v1/nestify/%d-%s", f.seq, file.Filename)
	f.Uploaded = append(f.Uploaded, u)
	return u, nil
}

func (f *Fake) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.DeleteErr != nil {
		return deleteFailed(f.DeleteErr)
	}
	f.Deleted = append(f.Deleted, publicID)
	return nil
}

// DeletedIDs returns a copy of the deleted public ids.
func (f *Fake) DeletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Deleted...)
}

// UploadedURLs returns a copy of the issued URLs.
func (f *Fake) UploadedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Uploaded...)
}
