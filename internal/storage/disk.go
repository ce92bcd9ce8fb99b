package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore is the boundary the photo and profile-picture services persist
// image files through. Only generated filenames cross into the database.
type FileStore interface {
	Save(subdir string, src io.Reader, originalName string) (string, error)
	Remove(subdir, filename string) error
	PublicURL(origin, subdir, filename string) string
}

// Disk stores uploads under Dir/<subdir>/<generated name>.
type Disk struct {
	Dir string
}

func NewDisk(dir string) *Disk {
	return &Disk{Dir: dir}
}

func (d *Disk) Save(subdir string, src io.Reader, originalName string) (string, error) {
	if d == nil || strings.TrimSpace(d.Dir) == "" {
		return "", errors.New("storage dir not configured")
	}

	dir := filepath.Join(d.Dir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	filename := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}
	return filename, nil
}

// Remove deletes the backing file. An already-absent file is not an error:
// the database row is the source of truth and the file may have been cleaned
// up out of band.
func (d *Disk) Remove(subdir, filename string) error {
	if d == nil || filename == "" {
		return nil
	}
	err := os.Remove(filepath.Join(d.Dir, subdir, filename))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (d *Disk) PublicURL(origin, subdir, filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("%s/uploads/%s/%s",
		strings.TrimRight(origin, "/"), subdir, url.PathEscape(filename))
}
