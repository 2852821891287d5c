package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeVisuals(t *testing.T) {
	original := []Post{
		{ID: "1", Type: "text_url", Platform: "instagram", Content: PostContent{Text: "A"}},
		{ID: "2", Type: "text_image", Platform: "facebook", Content: PostContent{Text: "B", ImageURL: "http://x/old.png"}},
		{ID: "3", Type: "text_video", Platform: "linkedin", Content: PostContent{Text: "C"}},
	}

	t.Run("nil result keeps originals", func(t *testing.T) {
		merged := MergeVisuals(original, nil)
		assert.Equal(t, original, merged)
	})

	t.Run("empty result keeps originals", func(t *testing.T) {
		merged := MergeVisuals(original, &VisualGenerationResult{})
		assert.Equal(t, original, merged)
	})

	t.Run("length, ids and order are preserved", func(t *testing.T) {
		result := &VisualGenerationResult{PostsWithVisuals: []GeneratedVisual{
			{ID: "3", Content: VisualContent{VideoURL: "http://x/c.mp4"}},
			{ID: "does-not-exist", Content: VisualContent{ImageURL: "http://x/ghost.png"}},
		}}

		merged := MergeVisuals(original, result)
		require.Len(t, merged, len(original))
		for i, post := range original {
			assert.Equal(t, post.ID, merged[i].ID)
		}
		assert.Equal(t, "http://x/c.mp4", merged[2].Content.VideoURL)
	})

	t.Run("camelCase wins over snake_case", func(t *testing.T) {
		result := &VisualGenerationResult{PostsWithVisuals: []GeneratedVisual{
			{ID: "1", Content: VisualContent{
				ImageURL:    "http://x/camel.png",
				ImageURLAlt: "http://x/snake.png",
			}},
		}}

		merged := MergeVisuals(original, result)
		assert.Equal(t, "http://x/camel.png", merged[0].Content.ImageURL)
	})

	t.Run("snake_case wins over legacy field", func(t *testing.T) {
		result := &VisualGenerationResult{PostsWithVisuals: []GeneratedVisual{
			{ID: "1", Content: VisualContent{
				ImageURLAlt: "http://x/snake.png",
				Image:       "http://x/legacy.png",
			}},
		}}

		merged := MergeVisuals(original, result)
		assert.Equal(t, "http://x/snake.png", merged[0].Content.ImageURL)
	})

	t.Run("no URL fields keeps the original value", func(t *testing.T) {
		result := &VisualGenerationResult{PostsWithVisuals: []GeneratedVisual{
			{ID: "2", Content: VisualContent{}},
		}}

		merged := MergeVisuals(original, result)
		assert.Equal(t, "http://x/old.png", merged[1].Content.ImageURL)
	})

	t.Run("only visual fields are adopted", func(t *testing.T) {
		result := &VisualGenerationResult{PostsWithVisuals: []GeneratedVisual{
			{ID: "1", Content: VisualContent{ImageURL: "http://x/a.png"}},
		}}

		merged := MergeVisuals(original, result)
		assert.Equal(t, "A", merged[0].Content.Text)
		assert.Equal(t, "text_url", merged[0].Type)
		assert.Equal(t, "instagram", merged[0].Platform)
		assert.Equal(t, "http://x/a.png", merged[0].Content.ImageURL)
	})

	t.Run("snake_case only entry", func(t *testing.T) {
		posts := []Post{{ID: "1", Content: PostContent{Text: "A"}}}
		result := &VisualGenerationResult{PostsWithVisuals: []GeneratedVisual{
			{ID: "1", Content: VisualContent{ImageURLAlt: "http://x/a.png"}},
		}}

		merged := MergeVisuals(posts, result)
		require.Len(t, merged, 1)
		assert.Equal(t, "A", merged[0].Content.Text)
		assert.Equal(t, "http://x/a.png", merged[0].Content.ImageURL)
	})

	t.Run("empty original list", func(t *testing.T) {
		result := &VisualGenerationResult{PostsWithVisuals: []GeneratedVisual{
			{ID: "1", Content: VisualContent{ImageURL: "http://x/a.png"}},
		}}

		merged := MergeVisuals(nil, result)
		assert.Empty(t, merged)
	})
}
