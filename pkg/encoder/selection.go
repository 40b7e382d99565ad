package encoder

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"github.com/shouni/gemini-fusion-studio/pkg/imgutil"
)

// Candidate は読み込み前の選択ファイルです。
type Candidate struct {
	URI       string
	Name      string
	MediaType string // 宣言された型。空なら読み込み後に中身から判定する
}

// NewCandidate は URI（ローカルパス、http(s)://、gs://、data:）から Candidate を作ります。
// 名前と media type は末尾のパス要素から推定します。
func NewCandidate(uri string) Candidate {
	if strings.HasPrefix(uri, "data:") {
		mt, _, _ := imgutil.ParseDataURI(uri)
		return Candidate{URI: uri, Name: "inline" + imgutil.ExtensionFor(mt), MediaType: mt}
	}
	name := filepath.Base(uri)
	if u, err := url.Parse(uri); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		name = path.Base(u.Path)
	}
	return Candidate{
		URI:       uri,
		Name:      name,
		MediaType: imgutil.MediaTypeByName(name),
	}
}

// Select はアップロード欄と同じ規則で候補を絞り込みます。
// 画像以外と宣言されたものは黙って落とし、モードの上限から既に保持している枚数を引いた数で切り詰めます。
// 順序は入力順を保ちます。
func Select(cands []Candidate, mode domain.GenerationMode, held int) []Candidate {
	room := Room(mode, held)
	filtered := Filter(cands)
	if len(filtered) > room {
		filtered = filtered[:room]
	}
	return filtered
}

// Room はモードの上限から既に保持している枚数を引いた残り枠です。
func Room(mode domain.GenerationMode, held int) int {
	return max(mode.MaxImages()-held, 0)
}

// Filter は画像以外と宣言された候補と空の URI を落とします。順序は保ちます。
func Filter(cands []Candidate) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.MediaType != "" && !imgutil.IsImageMediaType(c.MediaType) {
			continue
		}
		if strings.TrimSpace(c.URI) == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}
