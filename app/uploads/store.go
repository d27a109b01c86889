// Package uploads stores post images on local disk and serves them back.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Route is the URL prefix stored images are served under.
const Route = "/uploads/"

var ErrEmptyFile = errors.New("empty upload")

// DiskStore writes uploads into dir and names them <uuid>-<original name>.
type DiskStore struct {
	dir       string
	publicURL string
}

// NewDiskStore creates dir if needed. publicURL is the externally visible
// base of the server, e.g. http://localhost:5000.
func NewDiskStore(dir, publicURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Save copies r to a new file and returns the URL clients fetch it from.
func (s *DiskStore) Save(originalName string, r io.Reader) (string, error) {
	name := uuid.NewString() + "-" + cleanName(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n == 0 {
		err = ErrEmptyFile
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}

	return s.publicURL + Route + name, nil
}

// Handler serves stored files under Route. Directory listings are refused.
func (s *DiskStore) Handler() http.Handler {
	files := http.StripPrefix(Route, http.FileServer(http.Dir(s.dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// cleanName keeps only the base name and replaces characters that are
// awkward in URLs.
func cleanName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "image"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
