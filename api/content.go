package api

import (
	"context"
	"net/http"
)

type (
	GenerateContentRequest struct {
		CampaignID string   `json:"campaign_id,omitempty"`
		Platforms  []string `json:"platforms,omitempty"`
		PostCount  int      `json:"post_count,omitempty"`
		PostType   string   `json:"post_type,omitempty"`
		// BusinessContext and CampaignGuidance are opaque to this layer; the
		// backend owns their schema.
		BusinessContext  Document `json:"business_context,omitempty"`
		CampaignGuidance Document `json:"campaign_guidance,omitempty"`
	}

	RegenerateContentRequest struct {
		CampaignID       string   `json:"campaign_id,omitempty"`
		PostID           string   `json:"post_id"`
		PostType         string   `json:"post_type,omitempty"`
		Platform         string   `json:"platform,omitempty"`
		BusinessContext  Document `json:"business_context,omitempty"`
		CampaignGuidance Document `json:"campaign_guidance,omitempty"`
	}

	GenerateVisualsRequest struct {
		CampaignID       string   `json:"campaign_id,omitempty"`
		SocialPosts      []Post   `json:"social_posts"`
		BusinessContext  Document `json:"business_context,omitempty"`
		CampaignGuidance Document `json:"campaign_guidance,omitempty"`
	}

	GeneratedContent struct {
		Posts []Post `json:"posts"`
	}
)

func (c *Client) GenerateContent(ctx context.Context, request GenerateContentRequest) (*GeneratedContent, error) {
	var content GeneratedContent
	err := c.doJSON(ctx, http.MethodPost, "/v1/content/generate", request, &content)
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (c *Client) RegenerateContent(ctx context.Context, request RegenerateContentRequest) (*Post, error) {
	var post Post
	err := c.doJSON(ctx, http.MethodPost, "/v1/content/regenerate", request, &post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) GenerateBulkContent(ctx context.Context, request GenerateContentRequest) (*GeneratedContent, error) {
	var content GeneratedContent
	err := c.doJSON(ctx, http.MethodPost, "/v1/content/generate-bulk", request, &content)
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// GenerateVisuals asks the backend to render image/video content for the
// given posts. Partial results are expected; MergeVisuals reconciles them
// with the caller's post list.
func (c *Client) GenerateVisuals(ctx context.Context, request GenerateVisualsRequest) (*VisualGenerationResult, error) {
	var result VisualGenerationResult
	err := c.doJSON(ctx, http.MethodPost, "/v1/content/generate-visuals", request, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
