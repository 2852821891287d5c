package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/postpilot/postpilot/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestEnvelopeFailureMessagePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "error field wins over message",
			status:  http.StatusOK,
			body:    `{"success":false,"error":"quota exhausted","message":"something else"}`,
			wantMsg: "quota exhausted",
		},
		{
			name:    "message field when error absent",
			status:  http.StatusOK,
			body:    `{"success":false,"message":"campaign not found"}`,
			wantMsg: "campaign not found",
		},
		{
			name:    "generic message when envelope is silent",
			status:  http.StatusOK,
			body:    `{"success":false}`,
			wantMsg: "request failed: 200 OK",
		},
		{
			name:    "missing data despite success",
			status:  http.StatusOK,
			body:    `{"success":true}`,
			wantMsg: "request failed: 200 OK",
		},
		{
			name:    "error status with structured envelope",
			status:  http.StatusBadRequest,
			body:    `{"success":false,"error":"invalid objective"}`,
			wantMsg: "invalid objective",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := jsonServer(t, tt.status, tt.body)
			client := newTestClient(server.URL, nil, nil)

			_, err := client.GetCampaign(context.Background(), "c1")
			require.Error(t, err)

			var apiErr *ApiError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestErrorStatusWithoutEnvelope(t *testing.T) {
	server := jsonServer(t, http.StatusBadGateway, "upstream exploded")
	client := newTestClient(server.URL, nil, nil)

	_, err := client.GetCampaign(context.Background(), "c1")
	require.Error(t, err)

	var httpErr *utils.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
}

func TestGetCampaign(t *testing.T) {
	server := jsonServer(t, http.StatusOK,
		`{"success":true,"data":{"id":"c1","name":"Spring Sale","objective":"awareness"}}`)
	client := newTestClient(server.URL, nil, nil)

	campaign, err := client.GetCampaign(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", campaign.ID)
	assert.Equal(t, "Spring Sale", campaign.Name)
	assert.Equal(t, "awareness", campaign.Objective)
}

func TestListCampaignsPagination(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"success":true,"data":{"campaigns":[{"id":"c1"}],"total":1,"page":2,"limit":5}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil, nil)
	list, err := client.ListCampaigns(context.Background(), 2, 5)
	require.NoError(t, err)

	assert.Equal(t, "limit=5&page=2", gotQuery)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Campaigns, 1)
	assert.Equal(t, "c1", list.Campaigns[0].ID)
}

func TestDeleteCampaignWithoutData(t *testing.T) {
	server := jsonServer(t, http.StatusOK, `{"success":true,"message":"deleted"}`)
	client := newTestClient(server.URL, nil, nil)

	err := client.DeleteCampaign(context.Background(), "c1")
	assert.NoError(t, err)
}

func TestCreateCampaignMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/campaigns", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Spring Sale", r.FormValue("name"))
		assert.Equal(t, "7", r.FormValue("creativity_level"))

		file, header, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "logo.png", header.Filename)
		assert.Equal(t, "png-bytes", string(content))

		w.Write([]byte(`{"success":true,"data":{"id":"c9","name":"Spring Sale"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil, nil)
	campaign, err := client.CreateCampaign(context.Background(), CreateCampaignRequest{
		Name:            "Spring Sale",
		CreativityLevel: 7,
		Files: []MultiPartFile{
			{FieldName: "files", FileName: "logo.png", Content: strings.NewReader("png-bytes")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "c9", campaign.ID)
}

func TestGenerateVisuals(t *testing.T) {
	server := jsonServer(t, http.StatusOK,
		`{"success":true,"data":{"posts_with_visuals":[{"id":"1","content":{"image_url":"http://x/a.png"}}]}}`)
	client := newTestClient(server.URL, nil, nil)

	result, err := client.GenerateVisuals(context.Background(), GenerateVisualsRequest{
		SocialPosts: []Post{{ID: "1", Content: PostContent{Text: "A"}}},
	})
	require.NoError(t, err)
	require.Len(t, result.PostsWithVisuals, 1)
	assert.Equal(t, "http://x/a.png", result.PostsWithVisuals[0].Content.ImageURLAlt)

	merged := MergeVisuals([]Post{{ID: "1", Content: PostContent{Text: "A"}}}, result)
	require.Len(t, merged, 1)
	assert.Equal(t, "A", merged[0].Content.Text)
	assert.Equal(t, "http://x/a.png", merged[0].Content.ImageURL)
}

func TestAnalyzeURLIsNotEnveloped(t *testing.T) {
	t.Run("raw payload is the result", func(t *testing.T) {
		server := jsonServer(t, http.StatusOK,
			`{"industry":"retail","company_name":"ACME"}`)
		client := newTestClient(server.URL, nil, nil)

		analysis, err := client.AnalyzeURL(context.Background(), "https://acme.example", "")
		require.NoError(t, err)
		assert.Equal(t, "retail", analysis["industry"])
		assert.Equal(t, "ACME", analysis["company_name"])
	})

	t.Run("empty payload is the only local failure", func(t *testing.T) {
		server := jsonServer(t, http.StatusOK, "")
		client := newTestClient(server.URL, nil, nil)

		_, err := client.AnalyzeURL(context.Background(), "https://acme.example", "")
		var apiErr *ApiError
		require.ErrorAs(t, err, &apiErr)
	})

	t.Run("transport failure still propagates", func(t *testing.T) {
		server := jsonServer(t, http.StatusInternalServerError, "boom")
		client := newTestClient(server.URL, nil, nil)

		_, err := client.AnalyzeURL(context.Background(), "https://acme.example", "")
		var httpErr *utils.HttpError
		require.ErrorAs(t, err, &httpErr)
	})
}

func TestAnalyzeFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("files")
		require.NoError(t, err)
		w.Write([]byte(`{"success":true,"data":{"summary":"two slides"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil, nil)
	analysis, err := client.AnalyzeFiles(context.Background(), []MultiPartFile{
		{FieldName: "files", FileName: "deck.pdf", Content: strings.NewReader("pdf-bytes")},
	})
	require.NoError(t, err)
	assert.Equal(t, "two slides", analysis["summary"])
}

func TestPushGeminiKey(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`{"success":true,"message":"stored"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil, nil)
	err := client.PushGeminiKey(context.Background(), "gem123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"api_key":"gem123"}`, gotBody)
}
