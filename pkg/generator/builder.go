package generator

import (
	"encoding/base64"
	"fmt"

	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"google.golang.org/genai"
)

var placeholderImage = mustDecode(domain.PlaceholderImageBase64)

func mustDecode(s string) []byte {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic(fmt.Sprintf("placeholder image is not valid base64: %v", err))
	}
	return b
}

// BuildParts はモード、プロンプト、入力画像から API に送るパーツ列を組み立てます。
//
// 画像パーツはすべてテキストパーツより前に置き、テキストパーツはちょうど 1 つです。
// テキストから画像モードでは 1x1 の白 PNG を先頭に置きます（画像入力が必須のため）。
// それ以外のモードでは画像が 1 枚以上必要で、渡された順に並べます。
// 公仔生成モードではプロンプトを固定テンプレートで置き換えます。
func BuildParts(mode domain.GenerationMode, prompt string, images []domain.EncodedImage) ([]*genai.Part, error) {
	if !mode.Valid() {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown generation mode: %q", mode))
	}

	var parts []*genai.Part
	if mode == domain.ModeTextToImage {
		parts = make([]*genai.Part, 0, 2)
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: domain.PlaceholderImageMediaType, Data: placeholderImage},
		})
	} else {
		if len(images) == 0 {
			return nil, domain.NewValidationError(domain.MsgImageRequired)
		}
		if len(images) > mode.MaxImages() {
			return nil, domain.NewValidationError(domain.MsgTooManyImages)
		}
		parts = make([]*genai.Part, 0, len(images)+1)
		for _, img := range images {
			data, err := img.Bytes()
			if err != nil {
				return nil, domain.NewReadError(domain.MsgReadFailed, err)
			}
			parts = append(parts, &genai.Part{
				InlineData: &genai.Blob{MIMEType: img.MediaType, Data: data},
			})
		}
	}

	if mode.UsesFixedPrompt() {
		prompt = domain.FigurinePrompt
	}
	parts = append(parts, &genai.Part{Text: prompt})
	return parts, nil
}
