// Package client sends a conversation to the Groq chat-completions endpoint
// and returns the parsed response document unvalidated.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/EphemeralEpoch/smart-book-gist/internal/chat"
	"github.com/EphemeralEpoch/smart-book-gist/internal/config"
)

const userAgent = "smart-book-gist/1.0"

type Client struct {
	cfg        config.Config
	log        zerolog.Logger
	httpClient *http.Client
}

func New(cfg config.Config, logger zerolog.Logger) (*Client, error) {
	bundle := resolveTrustBundle(cfg.TrustBundlePath)
	hc, err := newHTTPClient(bundle)
	if err != nil {
		return nil, err
	}
	if bundle != "" {
		logger.Debug().Str("bundle", bundle).Msg("using trust bundle")
	}
	return &Client{cfg: cfg, log: logger, httpClient: hc}, nil
}

// SendChat performs a single synchronous POST. The model falls back to the
// configured default when params leave it empty; the timeout bounds the whole
// call and a timeout surfaces as a TransportError like any other network
// failure.
func (c *Client) SendChat(ctx context.Context, messages []chat.Message, params chat.Params) (chat.Document, error) {
	model := params.Model
	if model == "" {
		model = c.cfg.Model
	}
	payload := chat.Request{
		Model:       model,
		Messages:    messages,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = chat.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(resp, raw)}
	}

	var doc chat.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &DecodeError{Reason: err, Raw: string(raw)}
	}

	c.log.Debug().Str("model", model).Int("status", resp.StatusCode).Msg("chat completed")
	return doc, nil
}

// errorDetail prefers the parsed JSON error body, then the raw text, then the
// status line for an empty body.
func errorDetail(resp *http.Response, raw []byte) any {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err == nil {
		return parsed
	}
	if len(raw) > 0 {
		return string(raw)
	}
	return resp.Status
}
