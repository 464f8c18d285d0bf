package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()

	name, err := SaveImage(dir, fileHeader(t, "logo.png", pngHeader))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(name))
	assert.Len(t, name, 14)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	require.NoError(t, RemoveImage(dir, name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	// already gone
	assert.NoError(t, RemoveImage(dir, name))
}

func TestSaveImageRejectsNonImages(t *testing.T) {
	dir := t.TempDir()

	// the file name lies; content decides
	_, err := SaveImage(dir, fileHeader(t, "evil.png", []byte("#!/bin/sh\necho hi\n")))
	assert.ErrorIs(t, err, ErrNotImage)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}
