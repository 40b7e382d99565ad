package encoder

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

// --- Mocks ---

type mockFetcher struct {
	mu    sync.Mutex
	data  map[string][]byte
	err   error
	calls []string
}

func (m *mockFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, url)
	if m.err != nil {
		return nil, m.err
	}
	return m.data[url], nil
}

type mockObjectReader struct {
	data map[string][]byte
}

func (m *mockObjectReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	b, ok := m.data[uri]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) { return 0, errors.New("disk on fire") }
