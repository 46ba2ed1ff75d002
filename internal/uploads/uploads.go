// Package uploads stores issue images on local disk.
package uploads

import (
	"errors"         // Error inspection
	"fmt"            // Error formatting
	"io"             // Stream copying
	"mime/multipart" // Multipart uploads
	"os"             // File system
	"path/filepath"  // File name handling
	"strconv"        // String conversion
	"strings"        // Extension checks
	"time"           // Timestamped file names

	"github.com/google/uuid" // Unique file names
)

// MaxFileSize is the largest accepted image
const MaxFileSize = 5 * 1024 * 1024

// PublicPrefix is the URL prefix the images are served under
const PublicPrefix = "/uploads"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Upload errors, all caused by the client
var (
	ErrTooLarge    = errors.New("file too large, maximum size is 5MB")
	ErrNotAnImage  = errors.New("only image files are allowed")
	errEmptyUpload = errors.New("empty upload")
)

// IsClientError reports whether err was caused by the uploaded file itself
func IsClientError(err error) bool {
	return errors.Is(err, ErrTooLarge) || errors.Is(err, ErrNotAnImage) || errors.Is(err, errEmptyUpload)
}

// Store writes images into Dir. A stored image is only removed when the
// report it came with was rejected.
type Store struct {
	Dir string
}

// New creates the upload directory if needed
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save copies an uploaded image to disk and returns its public path
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Size == 0 {
		return "", errEmptyUpload
	}
	if fh.Size > MaxFileSize {
		return "", ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrNotAnImage
	}
	// Generic binary parts are judged by extension alone
	if ct := fh.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" && !strings.HasPrefix(ct, "image/") {
		return "", ErrNotAnImage
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + uuid.NewString() + ext
	full := filepath.Join(s.Dir, name)
	dst, err := os.Create(full)
	if err != nil {
		return "", err
	}

	_, err = io.Copy(dst, io.LimitReader(src, MaxFileSize+1))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(full) // Never keep a partial image
		return "", err
	}
	return PublicPrefix + "/" + name, nil
}

// Remove deletes an image previously returned by Save.
// Paths outside the upload directory are rejected.
func (s *Store) Remove(publicPath string) error {
	name, ok := strings.CutPrefix(publicPath, PublicPrefix+"/")
	if !ok || name == "" || name != filepath.Base(name) {
		return fmt.Errorf("not an upload path: %q", publicPath)
	}
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
