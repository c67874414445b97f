package ai

import (
	"context"
	"io"
	"net/http"
	"strings"

	"newsletter-api/core/interfaces"
)

type capturedRequest struct {
	url     string
	body    string
	headers http.Header
}

// mockHTTPClient answers POSTs with a fixed status and body
type mockHTTPClient struct {
	status   int
	body     string
	err      error
	requests []capturedRequest
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, headers http.Header) (interfaces.Response, error) {
	return nil, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader, headers http.Header) (interfaces.Response, error) {
	b, _ := io.ReadAll(body)
	m.requests = append(m.requests, capturedRequest{url: url, body: string(b), headers: headers})
	if m.err != nil {
		return nil, m.err
	}
	return &mockResponse{statusCode: m.status, body: m.body}, nil
}

type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int      { return m.statusCode }
func (m *mockResponse) Body() io.ReadCloser  { return io.NopCloser(strings.NewReader(m.body)) }
func (m *mockResponse) Header(string) string { return "" }
