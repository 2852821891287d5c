package api

import (
	"context"
	"net/http"
)

type analyzeURLRequest struct {
	URL          string `json:"url"`
	AnalysisType string `json:"analysis_type,omitempty"`
}

// AnalyzeURL extracts business context from a website. Unlike every other
// endpoint, the response is not enveloped: the raw payload is the result, and
// an empty payload is the only local failure condition.
func (c *Client) AnalyzeURL(ctx context.Context, pageURL, analysisType string) (Document, error) {
	var analysis Document
	err := c.doRaw(ctx, http.MethodPost, "/v1/analysis/url", analyzeURLRequest{
		URL:          pageURL,
		AnalysisType: analysisType,
	}, &analysis)
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

// AnalyzeFiles uploads files for analysis in a single multipart request.
func (c *Client) AnalyzeFiles(ctx context.Context, files []MultiPartFile) (Document, error) {
	var analysis Document
	err := c.doMultipart(ctx, "/v1/analysis/files", nil, files, &analysis)
	if err != nil {
		return nil, err
	}
	return analysis, nil
}
