package generator

import (
	"encoding/base64"
	"fmt"

	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"google.golang.org/genai"
)

// ParseResponse は Gemini の応答を GenerationResult に正規化します。
//
// 最初の候補のパーツを順に走査し、最初の画像パーツを結果の画像にします（2 枚目以降は捨てる）。
// テキストは後に来たもので上書きするため、最後のテキストパーツが残ります。
// 画像が 1 つも無ければテキストがあっても ContentError です。
func ParseResponse(resp *genai.GenerateContentResponse) (*domain.GenerationResult, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, domain.NewContentError(fmt.Errorf("Geminiからの有効な応答がありませんでした"))
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.Candidates[0]

	var result domain.GenerationResult
	var found bool
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				if !found {
					result.ImageData = part.InlineData.Data
					result.MediaType = part.InlineData.MIMEType
					result.Image = domain.DataURI(part.InlineData.MIMEType, base64.StdEncoding.EncodeToString(part.InlineData.Data))
					found = true
				}
				continue
			}
			if part.Text != "" {
				result.Text = part.Text
			}
		}
	}

	if !found {
		// 安全フィルター等によるブロックの確認
		if abnormalFinish(candidate.FinishReason) {
			return nil, domain.NewContentError(fmt.Errorf("画像生成が異常終了しました (FinishReason: %s)", candidate.FinishReason))
		}
		return nil, domain.NewContentError(nil)
	}
	return &result, nil
}

func abnormalFinish(r genai.FinishReason) bool {
	switch r {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
		return false
	}
	return true
}
