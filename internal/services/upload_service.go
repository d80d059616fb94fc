package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/carlosintrieri/AV3/internal/storage"
	"github.com/carlosintrieri/AV3/internal/utils"
)

const (
	maxImageSize = 5 << 20 // 5 MB

	displayMaxSize = 1280
	thumbMaxSize   = 320
)

var (
	ErrImageTooLarge    = errors.New("imagem excede o tamanho máximo de 5MB")
	ErrUnsupportedImage = errors.New("formato de imagem não suportado (use jpg ou png)")
)

// ProjectImageStore persists the uploaded photo URL on the project row.
type ProjectImageStore interface {
	SetImage(ctx context.Context, id uuid.UUID, imageURL string) error
}

// UploadService receives aircraft photos, resizes them into display and
// thumbnail variants and stores all three through the configured driver.
type UploadService struct {
	projects ProjectImageStore
	driver   storage.Driver
}

func NewUploadService(projects ProjectImageStore, driver storage.Driver) *UploadService {
	return &UploadService{projects: projects, driver: driver}
}

// UploadProjectImage validates and stores a photo for the given project and
// returns the display variant URL now set on the project.
func (s *UploadService) UploadProjectImage(ctx context.Context, projectID uuid.UUID, file *multipart.FileHeader) (string, error) {
	if file.Size > maxImageSize {
		return "", ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", ErrUnsupportedImage
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	img, format, err := image.Decode(src)
	if err != nil {
		return "", ErrUnsupportedImage
	}

	variants := []struct {
		name    string
		maxSize int
	}{
		{"original", 0},
		{"display", displayMaxSize},
		{"thumb", thumbMaxSize},
	}

	var displayURL string
	for _, v := range variants {
		out := img
		if v.maxSize > 0 {
			out = imaging.Fit(img, v.maxSize, v.maxSize, imaging.Lanczos)
		}

		buf, err := encodeImage(out, format)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s variant: %w", v.name, err)
		}

		key := fmt.Sprintf("projects/%s", utils.ImageFilename(projectID, v.name, ext))
		url, err := s.driver.Upload(ctx, buf, key)
		if err != nil {
			return "", fmt.Errorf("failed to store %s variant: %w", v.name, err)
		}
		if v.name == "display" {
			displayURL = url
		}
	}

	if err := s.projects.SetImage(ctx, projectID, displayURL); err != nil {
		return "", err
	}
	return displayURL, nil
}

func encodeImage(img image.Image, format string) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	switch format {
	case "png":
		if err := png.Encode(buf, img); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, err
		}
	}
	return buf, nil
}
