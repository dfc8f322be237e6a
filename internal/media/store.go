package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"social-api/internal/shared/apperr"

	"github.com/google/uuid"
)

// MaxImageBytes mirrors the 2048 KB upload cap.
const MaxImageBytes = 2048 * 1024

// Areas namespace uploaded assets by owning entity.
const (
	AreaUsers = "uploads/users"
	AreaPosts = "uploads/posts"
)

var allowedExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".svg":  true,
}

// Store persists uploaded bytes under a relative content path. The path
// is what gets persisted on the owning record.
type Store interface {
	Save(ctx context.Context, relPath, contentType string, r io.Reader, size int64) error
	Remove(ctx context.Context, relPath string) error
}

// Upload carries one inbound multipart file from handler to service.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// SaveImage validates an upload and stores it under the given area,
// returning the relative content path to persist on the owning record.
func SaveImage(ctx context.Context, store Store, area string, up *Upload) (string, error) {
	if err := ValidateImage(up.Filename, up.Size); err != nil {
		return "", err
	}
	relPath := ContentPath(area, up.Filename)
	if err := store.Save(ctx, relPath, up.ContentType, up.Reader, up.Size); err != nil {
		return "", err
	}
	return relPath, nil
}

// ValidateImage enforces the extension whitelist and size cap.
func ValidateImage(filename string, size int64) error {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedExts[ext] {
		return apperr.Validation("image must be one of jpeg, png, jpg, gif, svg")
	}
	if size > MaxImageBytes {
		return apperr.Validation("image may not be larger than %d KB", MaxImageBytes/1024)
	}
	return nil
}

// ContentPath builds the relative path an upload is stored under. The
// name keeps the upload-time prefix of the original scheme; the uuid
// suffix avoids collisions within one second.
func ContentPath(area, originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	name := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString()[:8], ext)
	return path.Join(area, name)
}
