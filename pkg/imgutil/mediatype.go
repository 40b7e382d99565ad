package imgutil

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// IsImageMediaType は media type が image/* かどうかを返します。パラメータは無視します。
func IsImageMediaType(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		mt = mediaType
	}
	return strings.HasPrefix(strings.ToLower(mt), "image/")
}

// MediaTypeByName はファイル名の拡張子から media type を推定します。わからなければ空文字です。
func MediaTypeByName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".heic":
		return "image/heic"
	case "":
		return ""
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		if base, _, err := mime.ParseMediaType(mt); err == nil {
			return base
		}
		return mt
	}
	return ""
}

// DetectMediaType は宣言された media type を優先し、無ければ名前、最後に中身から推定します。
func DetectMediaType(declared, name string, data []byte) string {
	if declared != "" {
		return declared
	}
	if mt := MediaTypeByName(name); mt != "" {
		return mt
	}
	return http.DetectContentType(data)
}

// ExtensionFor は media type に対応する保存用の拡張子を返します。
func ExtensionFor(mediaType string) string {
	switch strings.ToLower(mediaType) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	return ".bin"
}

// ParseDataURI は "data:<type>;base64,<payload>" を分解します。
func ParseDataURI(uri string) (mediaType, payload string, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", "", fmt.Errorf("data URI ではありません")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", fmt.Errorf("data URI にペイロードがありません")
	}
	mediaType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", "", fmt.Errorf("base64 以外の data URI には対応していません")
	}
	return mediaType, payload, nil
}
