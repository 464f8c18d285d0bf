package utils

import (
	"math/rand/v2"

	"github.com/gosimple/slug"
)

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns n random alphanumeric characters. Used for public
// identifiers and upload file names, not for secrets.
func RandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.IntN(len(letterBytes))]
	}
	return string(b)
}

// Slugify turns a title into an ASCII URL segment. Titles with nothing
// left after transliteration become "untitled".
func Slugify(title string) string {
	if s := slug.Make(title); s != "" {
		return s
	}
	return "untitled"
}
