package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BlobStore persists an uploaded file and returns the URL it is served from.
type BlobStore interface {
	Put(ctx context.Context, filename string, r io.Reader) (string, error)
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFilename keeps letters, digits, dots and hyphens and replaces
// everything else with underscores.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		name = ""
	}
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if strings.Trim(name, ".") == "" {
		return "file"
	}
	return name
}

// LocalBlobStore writes uploads into a directory served as static files.
type LocalBlobStore struct {
	dir     string
	baseURL string
}

// NewLocalBlobStore constructs a LocalBlobStore rooted at dir whose files are
// served under baseURL.
func NewLocalBlobStore(dir, baseURL string) *LocalBlobStore {
	return &LocalBlobStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Put stores r under a unique name derived from filename.
func (s *LocalBlobStore) Put(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + "-" + SanitizeFilename(filename)
	target := filepath.Join(s.dir, name)

	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	zap.L().Info("file uploaded", zap.String("name", name))
	return s.baseURL + "/" + name, nil
}
