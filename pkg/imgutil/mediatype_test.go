package imgutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsImageMediaType(t *testing.T) {
	assert.True(t, IsImageMediaType("image/png"))
	assert.True(t, IsImageMediaType("IMAGE/JPEG"))
	assert.True(t, IsImageMediaType("image/svg+xml; charset=utf-8"))
	assert.False(t, IsImageMediaType("application/pdf"))
	assert.False(t, IsImageMediaType(""))
}

func TestDetectMediaType(t *testing.T) {
	pngHeader := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	tests := []struct {
		name     string
		declared string
		file     string
		data     []byte
		want     string
	}{
		{"宣言済みの型を優先", "image/webp", "a.png", pngHeader, "image/webp"},
		{"拡張子から推定", "", "photo.JPG", nil, "image/jpeg"},
		{"中身から推定", "", "noext", pngHeader, "image/png"},
		{"画像以外", "", "notes.txt", []byte("hello"), "text/plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, DetectMediaType(tt.declared, tt.file, tt.data), tt.want)
		})
	}
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".png", ExtensionFor("image/png"))
	assert.Equal(t, ".jpg", ExtensionFor("image/jpeg"))
	assert.Equal(t, ".bin", ExtensionFor("application/octet-stream"))
}

func TestParseDataURI(t *testing.T) {
	mt, payload, err := ParseDataURI("data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mt)
	assert.Equal(t, "AAAA", payload)

	for _, bad := range []string{"http://x", "data:image/png;base64", "data:text/plain,hello"} {
		_, _, err := ParseDataURI(bad)
		assert.Error(t, err, bad)
	}
}
