package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"lingo-quiz/internal/config"
)

// LocalStorage writes files below Dir and exposes them under PublicPrefix.
type LocalStorage struct {
	dir    string
	prefix string
}

func NewLocalStorage(cfg config.LocalStorageConfig) *LocalStorage {
	dir := cfg.Dir
	if dir == "" {
		dir = "uploads"
	}
	prefix := "/" + strings.Trim(cfg.PublicPrefix, "/")
	if prefix == "/" {
		prefix = "/uploads"
	}
	return &LocalStorage{dir: dir, prefix: prefix}
}

// Dir is the root directory served as static files.
func (s *LocalStorage) Dir() string { return s.dir }

// PublicPrefix is the URL prefix the files are served under.
func (s *LocalStorage) PublicPrefix() string { return s.prefix }

func (s *LocalStorage) Save(ctx context.Context, folder, name string, r io.Reader, size int64, contentType string) (string, error) {
	rel := path.Join(folder, filepath.Base(name))
	dst := filepath.Join(s.dir, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", rel, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write file %s: %w", rel, err)
	}

	return s.prefix + "/" + rel, nil
}

// Delete removes the file behind publicPath. Files that are already gone are not an error.
func (s *LocalStorage) Delete(ctx context.Context, publicPath string) error {
	rel, ok := strings.CutPrefix(publicPath, s.prefix+"/")
	if !ok || rel == "" {
		return fmt.Errorf("path %q is not managed by local storage", publicPath)
	}
	if strings.Contains(rel, "..") {
		return fmt.Errorf("invalid storage path %q", publicPath)
	}

	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", publicPath, err)
	}
	return nil
}
