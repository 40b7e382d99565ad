package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
)

// DefaultJPEGQuality は再圧縮時の既定品質です。
const DefaultJPEGQuality = 75

// CompressToJPEG は画像データ（PNG, GIF, JPEG等）をJPEG形式に圧縮します。
// quality が 1..100 の範囲外なら DefaultJPEGQuality を使います。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("画像のデコードに失敗しました: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("JPEGエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// CompressIfSmaller は再圧縮の結果が元より小さい場合だけ差し替えます。
// 戻り値の bool は差し替えたかどうかです。
func CompressIfSmaller(data []byte, quality int) ([]byte, string, bool) {
	compressed, err := CompressToJPEG(data, quality)
	if err != nil || len(compressed) >= len(data) {
		return data, "", false
	}
	return compressed, "image/jpeg", true
}
