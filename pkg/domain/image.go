package domain

import (
	"encoding/base64"
	"fmt"
)

// FigurinePrompt は公仔生成モードで常に送信される固定プロンプトです。
const FigurinePrompt = `Create a 1/7 scale commercialized figurine of the characters in the picture, in a realistic style, in a real environment. The figurine is placed on a computer desk. The figurine has a round transparent acrylic base, with no text on the base. The content on the computer screen is the Zbrush modeling process of this figurine. Next to the computer screen is a packaging box with rounded corner design and a transparent front window, the figure inside is clearly visible.`

// テキストから画像モードで先頭に付ける 1x1 の白 PNG です。
// モデルはモードに関係なく画像入力を 1 枚以上要求します。
const (
	PlaceholderImageBase64    = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mP8/wcAAwAB/epv2AAAAABJRU5ErkJggg=="
	PlaceholderImageMediaType = "image/png"
)

// EncodedImage はユーザーが選択した画像の送信用表現です。
type EncodedImage struct {
	Data        string // base64 (StdEncoding)
	MediaType   string
	DisplayName string
}

// Bytes は base64 ペイロードを生のバイト列に戻します。
func (i EncodedImage) Bytes() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(i.Data)
	if err != nil {
		return nil, fmt.Errorf("画像 %q の base64 デコードに失敗しました: %w", i.DisplayName, err)
	}
	return b, nil
}

// DataURI はプレビュー表示用の data URI を返します。
func (i EncodedImage) DataURI() string {
	return DataURI(i.MediaType, i.Data)
}

// GenerationResult は生成結果です。Image は必ず埋まっており、Text は空なら「なし」を意味します。
type GenerationResult struct {
	Image     string // data URI
	Text      string
	ImageData []byte
	MediaType string
}

// HasText は付随テキストがあるかどうかを返します。
func (r *GenerationResult) HasText() bool {
	return r != nil && r.Text != ""
}

// DataURI は media type と base64 ペイロードから data URI を組み立てます。
func DataURI(mediaType, b64 string) string {
	return fmt.Sprintf("data:%s;base64,%s", mediaType, b64)
}
