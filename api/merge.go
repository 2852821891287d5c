package api

// MergeVisuals fuses generated visual URLs back into the caller's post list.
// It is total and fail-open: with no usable result it returns the original
// posts unchanged, so the UI keeps whatever it already had. The output always
// has the same length, ids and order as the input.
//
// URL precedence per generated entry: camelCase field, then snake_case, then
// the legacy bare field, then the original post's existing value. The
// precedence bridges inconsistent backend field naming across response schema
// versions and must not be reordered.
func MergeVisuals(original []Post, result *VisualGenerationResult) []Post {
	if result == nil || len(result.PostsWithVisuals) == 0 {
		log.Warn().Msg("no generated visuals, keeping original posts")
		return original
	}

	generated := make(map[string]GeneratedVisual, len(result.PostsWithVisuals))
	for _, visual := range result.PostsWithVisuals {
		generated[visual.ID] = visual
	}

	merged := make([]Post, len(original))
	for i, post := range original {
		merged[i] = post

		visual, ok := generated[post.ID]
		if !ok {
			continue
		}

		// Only the visual URL fields are adopted; everything else stays as
		// the caller had it.
		merged[i].Content.ImageURL = firstNonEmpty(
			visual.Content.ImageURL,
			visual.Content.ImageURLAlt,
			visual.Content.Image,
			post.Content.ImageURL,
		)
		merged[i].Content.VideoURL = firstNonEmpty(
			visual.Content.VideoURL,
			visual.Content.VideoURLAlt,
			visual.Content.Video,
			post.Content.VideoURL,
		)
	}

	return merged
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
