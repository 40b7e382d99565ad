package domain

import (
	"fmt"
	"strings"
)

// GenerationMode は生成モードの内部識別子です。
// 表示ラベルとは分離しており、ラベルは i18n パッケージのテーブルで引きます。
type GenerationMode string

const (
	ModeTextToImage  GenerationMode = "text-to-image"
	ModeImageToImage GenerationMode = "image-to-image"
	ModeMultiImage   GenerationMode = "multi-image"
	ModeFigurine     GenerationMode = "figurine"
)

const (
	// MaxImagesSingle は単一画像モードの上限枚数です。
	MaxImagesSingle = 1
	// MaxImagesMulti は複数画像参照モードの上限枚数です。
	MaxImagesMulti = 5
)

// Modes は表示順に並べた全モードを返します。
func Modes() []GenerationMode {
	return []GenerationMode{ModeTextToImage, ModeImageToImage, ModeMultiImage, ModeFigurine}
}

// ParseMode は識別子文字列から GenerationMode を解決します。大文字小文字は区別しません。
func ParseMode(s string) (GenerationMode, error) {
	want := GenerationMode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range Modes() {
		if m == want {
			return m, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("unknown generation mode: %q", s))
}

// Valid はモードが既知の値かどうかを返します。
func (m GenerationMode) Valid() bool {
	switch m {
	case ModeTextToImage, ModeImageToImage, ModeMultiImage, ModeFigurine:
		return true
	}
	return false
}

func (m GenerationMode) String() string { return string(m) }

// MaxImages はこのモードで保持できる入力画像の上限です。
// テキストから画像モードはアップロード自体が無効なので 0 を返します。
func (m GenerationMode) MaxImages() int {
	switch m {
	case ModeImageToImage, ModeFigurine:
		return MaxImagesSingle
	case ModeMultiImage:
		return MaxImagesMulti
	default:
		return 0
	}
}

// RequiresImages は送信前に入力画像が 1 枚以上必要かどうかを返します。
func (m GenerationMode) RequiresImages() bool {
	return m != ModeTextToImage
}

// RequiresPrompt は送信前に自由記述のプロンプトが必要かどうかを返します。
func (m GenerationMode) RequiresPrompt() bool {
	return m != ModeFigurine
}

// UsesFixedPrompt は呼び出し側のプロンプトを固定テンプレートで置き換えるモードかどうかを返します。
func (m GenerationMode) UsesFixedPrompt() bool {
	return m == ModeFigurine
}
