// Package media stores listing and profile images on a third-party host.
//
// Callers depend on Delegate only. Cloudinary talks to the real host,
// Breaker guards any Delegate with a circuit breaker, and Fake records calls
// for tests.
package media

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"regexp"
	"strings"

	apperrors "nestify/internal/errors"
)

// Delegate uploads images and deletes them by public id.
type Delegate interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, publicID string) error
}

var (
	// ErrUploadFailed is returned for any upload transport or config failure.
	ErrUploadFailed = errors.New("image upload failed")
	// ErrDeleteFailed is returned when the host refuses a delete.
	ErrDeleteFailed = errors.New("image delete failed")
	// ErrNotConfigured is returned when credentials are missing.
	ErrNotConfigured = errors.New("media host is not configured")
)

// uploadFailed classifies err as an upstream failure the handlers map to 500.
func uploadFailed(err error) error {
	return apperrors.Wrap(apperrors.ErrUpstream, ErrUploadFailed.Error(), fmt.Errorf("%w: %w", ErrUploadFailed, err))
}

func deleteFailed(err error) error {
	return apperrors.Wrap(apperrors.ErrUpstream, ErrDeleteFailed.Error(), fmt.Errorf("%w: %w", ErrDeleteFailed, err))
}

var versionSegment = regexp.MustCompile(`^v\d+/`)

// PublicIDFromURL derives the host's public id from a delivery URL:
// the path after /upload/, without a leading v<digits>/ version segment and
// without the file extension. It returns "" when the URL has no /upload/ part.
func PublicIDFromURL(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}

	_, rest, ok := strings.Cut(p, "/upload/")
	if !ok || rest == "" {
		return ""
	}
	rest = versionSegment.ReplaceAllString(rest, "")
	return strings.TrimSuffix(rest, path.Ext(rest))
}

// DeleteURL deletes the image behind a delivery URL. URLs the host did not
// issue are skipped.
func DeleteURL(ctx context.Context, d Delegate, imageURL string) error {
	publicID := PublicIDFromURL(imageURL)
	if publicID == "" {
		return nil
	}
	return d.Delete(ctx, publicID)
}
