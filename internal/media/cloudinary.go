package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

const imageResource = "image"

// CloudinaryConfig holds the credentials for the signed upload API.
// BaseURL is the API host without the version path, e.g.
// https://api.cloudinary.com.
type CloudinaryConfig struct {
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	Timeout   time.Duration
}

// Cloudinary is a Delegate backed by the Cloudinary upload API.
type Cloudinary struct {
	folder string
	cld    *cloudinary.Cloudinary
	err    error
}

var _ Delegate = (*Cloudinary)(nil)

// NewCloudinary creates a client. Missing credentials are reported per call
// as ErrNotConfigured so the server can still boot without them.
func NewCloudinary(cfg CloudinaryConfig) *Cloudinary {
	c := &Cloudinary{folder: cfg.Folder}
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		c.err = ErrNotConfigured
		return c
	}

	conf, err := config.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		c.err = fmt.Errorf("%w: %w", ErrNotConfigured, err)
		return c
	}
	if base := strings.TrimRight(cfg.BaseURL, "/"); base != "" {
		conf.API.UploadPrefix = base
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	conf.API.Timeout = int64(cfg.Timeout / time.Second)

	cld, err := cloudinary.NewFromConfiguration(*conf)
	if err != nil {
		c.err = fmt.Errorf("%w: %w", ErrNotConfigured, err)
		return c
	}
	c.cld = cld
	return c
}

// Upload sends one image and returns its https delivery URL.
func (c *Cloudinary) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if c.err != nil {
		return "", uploadFailed(c.err)
	}

	src, err := file.Open()
	if err != nil {
		return "", uploadFailed(err)
	}
	defer src.Close()

	res, err := c.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:       c.folder,
		ResourceType: imageResource,
	})
	if err != nil {
		return "", uploadFailed(err)
	}
	if res.Error.Message != "" {
		return "", uploadFailed(fmt.Errorf("host: %s", res.Error.Message))
	}
	if res.SecureURL == "" {
		return "", uploadFailed(fmt.Errorf("host returned no url"))
	}
	return res.SecureURL, nil
}

// Delete removes an image. An image that is already gone counts as deleted.
func (c *Cloudinary) Delete(ctx context.Context, publicID string) error {
	if c.err != nil {
		return deleteFailed(c.err)
	}

	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: imageResource,
	})
	if err != nil {
		return deleteFailed(err)
	}
	if res.Error.Message != "" {
		return deleteFailed(fmt.Errorf("host: %s", res.Error.Message))
	}
	switch res.Result {
	case "ok", "not found":
		return nil
	default:
		return deleteFailed(fmt.Errorf("host result %q", res.Result))
	}
}
