// Package encoder は利用者が選んだ画像ファイルを送信用の EncodedImage に変換します。
package encoder

import (
	"encoding/base64"
	"io"

	"github.com/shouni/gemini-fusion-studio/pkg/domain"
)

// Encode は r の中身をすべて読み、base64 にして media type と表示名を添えます。
// 読み込み失敗と空ファイルは ReadError です。
func Encode(name, mediaType string, r io.Reader) (domain.EncodedImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.EncodedImage{}, domain.NewReadError(domain.MsgReadFailed, err)
	}
	return EncodeBytes(name, mediaType, data)
}

// EncodeBytes は読み込み済みのバイト列から EncodedImage を作ります。
func EncodeBytes(name, mediaType string, data []byte) (domain.EncodedImage, error) {
	if len(data) == 0 {
		return domain.EncodedImage{}, domain.NewReadError(domain.MsgEmptyImage, nil)
	}
	return domain.EncodedImage{
		Data:        base64.StdEncoding.EncodeToString(data),
		MediaType:   mediaType,
		DisplayName: name,
	}, nil
}
