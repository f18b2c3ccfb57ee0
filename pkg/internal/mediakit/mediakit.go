// Package mediakit is the boundary to the external object storage.
// The domain services only ever see URLs; upload and deletion go through
// the Uploader interface so the storage provider stays swappable.
package mediakit

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/glimpse-social/glimpse/pkg/internal/models"
	"github.com/glimpse-social/glimpse/pkg/internal/status"
	"github.com/samber/lo"
)

var (
	allowedImageExtensions = []string{"jpg", "jpeg", "png", "gif", "webp"}
	allowedVideoExtensions = []string{"mp4", "mov", "avi", "wmv", "flv", "webm"}
)

type Uploader interface {
	Upload(data []byte, filename string, contentType string) (string, error)
	Delete(url string) error
}

// U is the configured uploader, set during boot. Stays nil in deployments
// that do not enable media features.
var U Uploader

func extensionOf(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// KindOf maps a filename onto a media type by its extension.
func KindOf(filename string) (string, error) {
	ext := extensionOf(filename)
	if len(ext) == 0 {
		return "", fmt.Errorf("filename %q has no extension: %w", filename, status.ErrUnsupportedMediaType)
	}
	if lo.Contains(allowedImageExtensions, ext) {
		return models.MediaTypeImage, nil
	}
	if lo.Contains(allowedVideoExtensions, ext) {
		return models.MediaTypeVideo, nil
	}
	return "", fmt.Errorf("extension %q is not an accepted image or video format: %w", ext, status.ErrUnsupportedMediaType)
}

// DetectMediaType guesses the media type of an already-uploaded URL.
// Anything that does not look like a video counts as an image.
func DetectMediaType(url string) string {
	lower := strings.ToLower(url)
	for _, ext := range allowedVideoExtensions {
		if strings.Contains(lower, "."+ext) {
			return models.MediaTypeVideo
		}
	}
	return models.MediaTypeImage
}
