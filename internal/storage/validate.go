package storage

import "errors"

var (
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image too large")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ValidateImage checks the declared content type against the allow-list and
// the size against the ceiling. Callers run it before any upload attempt.
func ValidateImage(contentType string, size, max int64) error {
	if _, ok := imageExtensions[contentType]; !ok {
		return ErrUnsupportedImageType
	}
	if size > max {
		return ErrImageTooLarge
	}
	return nil
}

// ExtensionFor returns the file extension for an allow-listed content type,
// or empty for anything else.
func ExtensionFor(contentType string) string {
	return imageExtensions[contentType]
}
