package generator

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockBackend struct {
	generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	calls        int
}

func (m *mockBackend) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, contents, config)
	}
	return nil, nil
}

type mockPartsGenerator struct {
	generateFunc func(model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

func (m *mockPartsGenerator) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	if m.generateFunc != nil {
		return m.generateFunc(model, parts, opts)
	}
	return nil, nil
}

func imagePart(mime string, data []byte) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mime, Data: data}}
}

func textPart(s string) *genai.Part {
	return &genai.Part{Text: s}
}

func responseWith(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: parts},
		}},
	}
}
