package portal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const MaxResponseSize = 10 << 20 // 10MB

type Client struct {
	UserAgent      string
	client         *http.Client
	transport      *http.Transport
	OnHeaders      func(req *http.Request)
	AbortOnNone2xx bool
}

func GetDefaultTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}

func NewDefaultClient(transport *http.Transport) *Client {
	if transport == nil {
		transport = GetDefaultTransport()
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   15 * time.Second,
	}

	return &Client{
		client:         client,
		transport:      transport,
		UserAgent:      "webfolio-api",
		OnHeaders:      nil,
		AbortOnNone2xx: false,
	}
}

func (f *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if f == nil || f.client == nil {
		return nil, fmt.Errorf("client is nil")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)

	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if f.OnHeaders != nil {
		f.OnHeaders(req)
	}

	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	if f.AbortOnNone2xx && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		return nil, fmt.Errorf("received non-2xx status code: %d", resp.StatusCode)
	}

	body, err := ReadWithSizeLimit(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

func ReadWithSizeLimit(r io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, MaxResponseSize))
}
