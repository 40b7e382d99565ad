package generator

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// PartsBackend は go-gemini-client のクライアントを ContentGenerator として使うためのアダプターです。
// 共有の gemini.GenerativeModel を既に持っているホスト向けで、CLI は *genai.Models を直接使います。
//
// 制約（*genai.Models と同じ振る舞いにはなりません）:
//   - gemini.GenerateOptions に応答モダリティの項目が無いため、ResponseModalities は送られません。
//     モデル既定のモダリティに依存します。
//   - gemini.Client は一時的なエラーで最低 1 回リトライします（MaxRetries 0 は既定値 1 に丸められる）。
//     1 往復だけという Client の前提は守られません。
//   - 異常な FinishReason は go-gemini-client 側でエラーになるため、ContentError ではなく TransportError として届きます。
//
// config から引き継ぐのは SafetySettings と ImageConfig.AspectRatio だけです。
type PartsBackend struct {
	client PartsGenerator
}

// NewPartsBackend は PartsBackend を初期化します。
func NewPartsBackend(client PartsGenerator) (*PartsBackend, error) {
	if client == nil {
		return nil, fmt.Errorf("client (PartsGenerator) is required")
	}
	return &PartsBackend{client: client}, nil
}

// GenerateContent は contents のパーツを順序どおりに平らにして GenerateWithParts に渡します。
func (b *PartsBackend) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var parts []*genai.Part
	for _, c := range contents {
		if c == nil {
			continue
		}
		parts = append(parts, c.Parts...)
	}

	resp, err := b.client.GenerateWithParts(ctx, model, parts, optionsFrom(config))
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.RawResponse == nil {
		return nil, fmt.Errorf("go-gemini-client から空の応答が返されました")
	}
	return resp.RawResponse, nil
}

// optionsFrom は GenerateOptions で表現できる項目だけを写します。
func optionsFrom(config *genai.GenerateContentConfig) gemini.GenerateOptions {
	var opts gemini.GenerateOptions
	if config == nil {
		return opts
	}
	opts.SafetySettings = config.SafetySettings
	if config.ImageConfig != nil {
		opts.AspectRatio = config.ImageConfig.AspectRatio
	}
	return opts
}
