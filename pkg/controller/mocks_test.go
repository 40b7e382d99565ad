package controller

import (
	"context"
	"sync/atomic"

	"github.com/shouni/gemini-fusion-studio/pkg/domain"
	"google.golang.org/genai"
)

// mockGenerator は generator.ImageGenerator のテスト用モックです。
type mockGenerator struct {
	generateFunc func(ctx context.Context, parts []*genai.Part) (*domain.GenerationResult, error)
	calls        atomic.Int32
	lastParts    []*genai.Part
}

func (m *mockGenerator) Generate(ctx context.Context, parts []*genai.Part) (*domain.GenerationResult, error) {
	m.calls.Add(1)
	m.lastParts = parts
	if m.generateFunc != nil {
		return m.generateFunc(ctx, parts)
	}
	return &domain.GenerationResult{Image: "data:image/png;base64,AAAA", MediaType: "image/png", ImageData: []byte{0, 0, 0}}, nil
}

func pngImage(name string) domain.EncodedImage {
	return domain.EncodedImage{Data: "iVBORw0K", MediaType: "image/png", DisplayName: name}
}
