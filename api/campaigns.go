package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type CreateCampaignRequest struct {
	Name                string
	BusinessDescription string
	BusinessWebsite     string
	Objective           string
	CampaignType        string
	CreativityLevel     int
	Files               []MultiPartFile
}

// CreateCampaign creates a campaign. The request is a single multipart form
// because campaign creation may carry file attachments.
func (c *Client) CreateCampaign(ctx context.Context, request CreateCampaignRequest) (*Campaign, error) {
	params := []MultiPartParam{
		{Name: "name", Value: request.Name},
		{Name: "business_description", Value: request.BusinessDescription},
		{Name: "business_website", Value: request.BusinessWebsite},
		{Name: "objective", Value: request.Objective},
		{Name: "campaign_type", Value: request.CampaignType},
		{Name: "creativity_level", Value: strconv.Itoa(request.CreativityLevel)},
	}

	var campaign Campaign
	err := c.doMultipart(ctx, "/v1/campaigns", params, request.Files, &campaign)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *Client) ListCampaigns(ctx context.Context, page, limit int) (*CampaignList, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	path := "/v1/campaigns"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var list CampaignList
	err := c.doJSON(ctx, http.MethodGet, path, nil, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) GetCampaign(ctx context.Context, id string) (*Campaign, error) {
	var campaign Campaign
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/v1/campaigns/%s", url.PathEscape(id)), nil, &campaign)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *Client) UpdateCampaign(ctx context.Context, id string, campaign Campaign) (*Campaign, error) {
	var updated Campaign
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/v1/campaigns/%s", url.PathEscape(id)), campaign, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/v1/campaigns/%s", url.PathEscape(id)), nil, nil)
}
