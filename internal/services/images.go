package services

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"agora/internal/utils"

	"github.com/gabriel-vasile/mimetype"
)

const MaxImageSize = 5 * 1024 * 1024

var (
	ErrNotImage      = errors.New("only JPEG and PNG images are allowed")
	ErrImageTooLarge = errors.New("image must be 5MB or smaller")
)

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// SaveImage sniffs the upload, stores it under dir with a random name and
// returns that name.
func SaveImage(dir string, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxImageSize {
		return "", ErrImageTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", err
	}
	ext, ok := imageExt[mtype.String()]
	if !ok {
		return "", ErrNotImage
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := utils.RandomString(10) + ext
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(out.Name())
		return "", err
	}
	return name, nil
}

// RemoveImage deletes a previously saved image. Missing files are ignored.
func RemoveImage(dir, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(dir, filepath.Base(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
