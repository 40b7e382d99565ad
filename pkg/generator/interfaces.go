package generator

import (
	"context"

	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// ContentGenerator は Gemini の generateContent を 1 回呼び出すバックエンドです。
// *genai.Models がそのまま満たします。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// PartsGenerator は go-gemini-client のパーツ指定生成の窓口です。
// gemini.GenerativeModel がこれを満たします。
type PartsGenerator interface {
	GenerateWithParts(ctx context.Context, modelName string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// ImageGenerator はコントローラーが利用する生成の窓口です。
type ImageGenerator interface {
	Generate(ctx context.Context, parts []*genai.Part) (*domain.GenerationResult, error)
}

var (
	_ ContentGenerator = (*genai.Models)(nil)
	_ PartsGenerator   = gemini.GenerativeModel(nil)
	_ ImageGenerator   = (*Client)(nil)
	_ ContentGenerator = (*PartsBackend)(nil)
)
