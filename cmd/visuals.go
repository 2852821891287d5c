package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/postpilot/postpilot/api"
	"github.com/rs/xid"
	"github.com/spf13/cobra"
)

func newVisualsCmd(app *App) *cobra.Command {
	var request api.GenerateVisualsRequest
	var postsFile, contextFile, outFile string

	visuals := &cobra.Command{
		Use:   "visuals",
		Short: "Generate visuals for posts and merge the URLs back in",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(postsFile)
			if err != nil {
				return err
			}

			var posts []api.Post
			if err := json.Unmarshal(raw, &posts); err != nil {
				return fmt.Errorf("invalid posts file %s: %w", postsFile, err)
			}

			if request.BusinessContext, err = loadDocument(contextFile); err != nil {
				return err
			}

			request.SocialPosts = posts
			result, err := app.Client.GenerateVisuals(cmd.Context(), request)
			if err != nil {
				// Fail open: the caller keeps their posts, just without
				// fresh visuals.
				guid := xid.New().String()
				log.Err(err).Str("guid", guid).Msg("visual generation failed, keeping original posts")
				result = nil
			}

			merged := api.MergeVisuals(posts, result)

			if outFile != "" {
				out, err := json.MarshalIndent(merged, "", "  ")
				if err != nil {
					return err
				}
				return os.WriteFile(outFile, out, 0o644)
			}
			return printJSON(merged)
		},
	}

	visuals.Flags().StringVar(&postsFile, "posts", "", "posts JSON file")
	visuals.Flags().StringVar(&request.CampaignID, "campaign", "", "campaign id")
	visuals.Flags().StringVar(&contextFile, "context", "", "business context JSON file")
	visuals.Flags().StringVar(&outFile, "out", "", "write merged posts to this file instead of stdout")
	_ = visuals.MarkFlagRequired("posts")

	return visuals
}
