package encoder

import (
	"testing"

	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCandidate(t *testing.T) {
	tests := []struct {
		uri      string
		wantName string
		wantType string
	}{
		{"testdata/img1.png", "img1.png", "image/png"},
		{"https://example.com/a/b/photo.jpeg?x=1", "photo.jpeg", "image/jpeg"},
		{"gs://bucket/refs/char.webp", "char.webp", "image/webp"},
		{"notes.txt", "notes.txt", "text/plain"},
		{"noext", "noext", ""},
		{"data:image/jpeg;base64,/9j/AA==", "inline.jpg", "image/jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			c := NewCandidate(tt.uri)
			assert.Equal(t, tt.uri, c.URI)
			assert.Equal(t, tt.wantName, c.Name)
			assert.Equal(t, tt.wantType, c.MediaType)
		})
	}
}

func TestSelect(t *testing.T) {
	cands := []Candidate{
		NewCandidate("1.png"),
		NewCandidate("doc.pdf"),
		NewCandidate("2.jpg"),
		NewCandidate("3.png"),
		NewCandidate("4.png"),
		NewCandidate("5.png"),
		NewCandidate("6.png"),
	}

	names := func(cs []Candidate) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = c.Name
		}
		return out
	}

	t.Run("複数画像モードは画像以外を除いて 5 枚まで", func(t *testing.T) {
		got := Select(cands, domain.ModeMultiImage, 0)
		assert.Equal(t, []string{"1.png", "2.jpg", "3.png", "4.png", "5.png"}, names(got))
	})

	t.Run("既に保持している枚数を差し引く", func(t *testing.T) {
		got := Select(cands, domain.ModeMultiImage, 3)
		assert.Equal(t, []string{"1.png", "2.jpg"}, names(got))
	})

	t.Run("単一画像モードは 1 枚だけ", func(t *testing.T) {
		got := Select(cands[1:], domain.ModeImageToImage, 0)
		assert.Equal(t, []string{"2.jpg"}, names(got))
	})

	t.Run("テキストから画像モードは何も選ばない", func(t *testing.T) {
		assert.Empty(t, Select(cands, domain.ModeTextToImage, 0))
	})

	t.Run("上限に達していれば何も選ばない", func(t *testing.T) {
		assert.Empty(t, Select(cands, domain.ModeFigurine, 1))
	})

	t.Run("型が不明なものは読み込み後の判定に回す", func(t *testing.T) {
		got := Select([]Candidate{NewCandidate("noext")}, domain.ModeFigurine, 0)
		assert.Len(t, got, 1)
	})
}

func TestFilter(t *testing.T) {
	got := Filter([]Candidate{NewCandidate("a.png"), NewCandidate("doc.pdf"), {URI: "  "}, NewCandidate("noext")})
	require.Len(t, got, 2)
	assert.Equal(t, "a.png", got[0].Name)
	assert.Equal(t, "noext", got[1].Name)

	assert.Zero(t, Room(domain.ModeFigurine, 3))
	assert.Equal(t, 4, Room(domain.ModeMultiImage, 1))
}
