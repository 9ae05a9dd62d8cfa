// Package media keeps uploaded screenshots on disk and serves them back over HTTP.
package media

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the path under which stored files are served.
const URLPrefix = "/media/"

const screenshotsDir = "screenshots"

// ErrInvalidReference is returned by Remove for references outside the store.
var ErrInvalidReference = errors.New("media: invalid reference")

// Store writes files below a root directory.
type Store struct {
	root string
}

// NewStore creates root and its screenshot directory when missing.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, screenshotsDir), 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

// SaveScreenshot stores content under a fresh random name with extension ext and returns the
// URL path it is served at.
func (store *Store) SaveScreenshot(ext string, content io.Reader) (string, error) {
	name := uuid.NewString() + ext
	file, err := os.OpenFile(filepath.Join(store.root, screenshotsDir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return path.Join(URLPrefix, screenshotsDir, name), nil
}

// Remove deletes a file previously returned by SaveScreenshot.
func (store *Store) Remove(reference string) error {
	rel, ok := strings.CutPrefix(reference, URLPrefix)
	if !ok || strings.Contains(rel, "..") {
		return ErrInvalidReference
	}
	return os.Remove(filepath.Join(store.root, filepath.FromSlash(rel)))
}

// Handler serves stored files under URLPrefix. Directory listings are not served.
func (store *Store) Handler() http.Handler {
	files := http.StripPrefix(URLPrefix, http.FileServer(http.Dir(store.root)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
