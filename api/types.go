package api

import (
	"encoding/json"
	"time"
)

type (
	// envelope wraps every backend response except URL analysis.
	envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data,omitempty"`
		Message string          `json:"message,omitempty"`
		Error   string          `json:"error,omitempty"`
	}

	// Document is a schema-less payload owned by the backend. It is passed
	// through unvalidated.
	Document map[string]any

	PostContent struct {
		Text        string   `json:"text"`
		Hashtags    []string `json:"hashtags,omitempty"`
		ImageURL    string   `json:"imageUrl,omitempty"`
		VideoURL    string   `json:"videoUrl,omitempty"`
		ImagePrompt string   `json:"image_prompt,omitempty"`
		VideoPrompt string   `json:"video_prompt,omitempty"`
	}

	Post struct {
		ID       string      `json:"id"`
		Type     string      `json:"type"`
		Platform string      `json:"platform"`
		Content  PostContent `json:"content"`
	}

	// VisualContent mirrors the generated-visual payload. The backend's field
	// naming has drifted across versions, so all spellings are kept.
	VisualContent struct {
		ImageURL    string `json:"imageUrl,omitempty"`
		ImageURLAlt string `json:"image_url,omitempty"`
		Image       string `json:"image,omitempty"`
		VideoURL    string `json:"videoUrl,omitempty"`
		VideoURLAlt string `json:"video_url,omitempty"`
		Video       string `json:"video,omitempty"`
	}

	GeneratedVisual struct {
		ID      string        `json:"id"`
		Content VisualContent `json:"content"`
	}

	VisualGenerationResult struct {
		PostsWithVisuals []GeneratedVisual `json:"posts_with_visuals"`
	}

	Campaign struct {
		ID                  string    `json:"id"`
		Name                string    `json:"name"`
		BusinessDescription string    `json:"business_description,omitempty"`
		BusinessWebsite     string    `json:"business_website,omitempty"`
		Objective           string    `json:"objective,omitempty"`
		CampaignType        string    `json:"campaign_type,omitempty"`
		CreativityLevel     int       `json:"creativity_level,omitempty"`
		Posts               []Post    `json:"posts,omitempty"`
		CreatedAt           time.Time `json:"created_at,omitempty"`
	}

	CampaignList struct {
		Campaigns []Campaign `json:"campaigns"`
		Total     int        `json:"total"`
		Page      int        `json:"page"`
		Limit     int        `json:"limit"`
	}
)

// failureMessage extracts the envelope's failure text: explicit error field
// first, then the human-readable message.
func (e *envelope) failureMessage() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
