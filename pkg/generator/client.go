package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"google.golang.org/genai"
)

// Client は組み立て済みのパーツをリモート API に送り、応答を正規化します。
// リトライやタイムアウトは持たず、1 往復だけ行います。打ち切りは呼び出し側の ctx に従います。
type Client struct {
	backend ContentGenerator
	model   string
	logger  *slog.Logger
}

// ClientOption は Client の設定を変更します。
type ClientOption func(*Client)

// WithClientLogger はログ出力先を設定します。
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient は依存関係を注入して Client を初期化します。model が空なら DefaultModel です。
func NewClient(backend ContentGenerator, model string, opts ...ClientOption) (*Client, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend (ContentGenerator) is required")
	}
	if model == "" {
		model = DefaultModel
	}
	c := &Client{
		backend: backend,
		model:   model,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model は使用するモデル名です。
func (c *Client) Model() string { return c.model }

// Generate はパーツを 1 つのユーザーコンテンツとして送り、画像と文章の両方を要求します。
func (c *Client) Generate(ctx context.Context, parts []*genai.Part) (*domain.GenerationResult, error) {
	if len(parts) == 0 {
		return nil, domain.NewValidationError("request has no parts")
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{ModalityImage, ModalityText},
	}

	c.logger.DebugContext(ctx, "Geminiに画像生成をリクエストします", "model", c.model, "parts", len(parts))
	resp, err := c.backend.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("Gemini画像生成エラー: %w", domain.NewTransportError(err))
	}

	result, err := ParseResponse(resp)
	if err != nil {
		c.logger.WarnContext(ctx, "応答に画像が含まれていませんでした", "model", c.model, "error", err)
		return nil, fmt.Errorf("レスポンスパースに失敗しました: %w", err)
	}

	c.logger.InfoContext(ctx, "画像を受信しました", "model", c.model, "media_type", result.MediaType, "bytes", len(result.ImageData), "has_text", result.HasText())
	return result, nil
}
