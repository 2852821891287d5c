package api

import (
	"context"
	"net/http"
)

type geminiKeyRequest struct {
	APIKey string `json:"api_key"`
}

// PushGeminiKey registers the Gemini API key with the backend so server-side
// generation can use it.
func (c *Client) PushGeminiKey(ctx context.Context, key string) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/config/gemini-key", geminiKeyRequest{APIKey: key}, nil)
}
