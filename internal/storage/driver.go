package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/carlosintrieri/AV3/internal/config"
)

// Driver abstracts where aircraft photos live. The local driver serves them
// from ./uploads; the cloud drivers return CDN URLs.
type Driver interface {
	// Upload writes the object and returns its public URL.
	Upload(ctx context.Context, r io.Reader, key string) (string, error)

	// Delete removes the object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the URL clients use to fetch the object.
	PublicURL(key string) string
}

// New builds the driver selected by STORAGE_DRIVER.
func New(cfg config.StorageConfig) (Driver, error) {
	switch cfg.Driver {
	case "local", "":
		path := cfg.UploadsPath
		if path == "" {
			path = "./uploads"
		}
		return NewLocal(path), nil
	case "s3":
		return NewS3(cfg)
	case "r2":
		return NewR2(cfg)
	default:
		return nil, fmt.Errorf("driver de armazenamento desconhecido: %s", cfg.Driver)
	}
}

func contentTypeFor(key string) string {
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	}
	return "application/octet-stream"
}
