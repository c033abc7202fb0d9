// Package upload persists poster images submitted with the add-movie form
// and hands back the public URL path stored on the movie record.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// URLPrefix is the public path under which saved files are served.
const URLPrefix = "/uploads"

// Store writes uploaded files into a single shared directory.  Stored names
// are generated server-side, so concurrent uploads of files that share a
// client-side name can never collide and a hostile original filename never
// influences the on-disk path.
type Store struct {
	Dir string // directory receiving uploaded files
}

// NewStore ensures the upload directory exists and returns a Store for it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save writes the uploaded file under a fresh collision-resistant name
// (millisecond timestamp prefix plus a random UUID, keeping only the
// original extension) and returns the public URL path to store on the
// movie record.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), safeExt(fh.Filename))
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return URLPrefix + "/" + name, nil
}

// safeExt extracts a lowercase file extension limited to simple
// alphanumeric suffixes.  Anything else is dropped; the file is still
// stored, just without an extension.
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || ext == "." {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
