package cmd

import (
	"fmt"

	"github.com/postpilot/postpilot/api"
	"github.com/rs/xid"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

var knownPlatforms = []string{"instagram", "facebook", "linkedin", "twitter", "tiktok"}

func validatePlatforms(platforms []string) error {
	for _, platform := range platforms {
		if !slices.Contains(knownPlatforms, platform) {
			return fmt.Errorf("unknown platform %q (expected one of %v)", platform, knownPlatforms)
		}
	}
	return nil
}

func newGenerateCmd(app *App) *cobra.Command {
	var request api.GenerateContentRequest
	var contextFile, guidanceFile string

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate campaign content",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePlatforms(request.Platforms); err != nil {
				return err
			}

			var err error
			if request.BusinessContext, err = loadDocument(contextFile); err != nil {
				return err
			}
			if request.CampaignGuidance, err = loadDocument(guidanceFile); err != nil {
				return err
			}

			content, err := app.Client.GenerateContent(cmd.Context(), request)
			if err != nil {
				guid := xid.New().String()
				log.Err(err).Str("guid", guid).Msg("content generation failed")
				return err
			}
			return printJSON(content)
		},
	}

	generate.Flags().StringVar(&request.CampaignID, "campaign", "", "campaign id")
	generate.Flags().StringSliceVar(&request.Platforms, "platforms", nil, "target platforms")
	generate.Flags().IntVar(&request.PostCount, "count", 0, "number of posts")
	generate.Flags().StringVar(&request.PostType, "type", "", "post type")
	generate.Flags().StringVar(&contextFile, "context", "", "business context JSON file")
	generate.Flags().StringVar(&guidanceFile, "guidance", "", "campaign guidance JSON file")

	return generate
}

func newRegenerateCmd(app *App) *cobra.Command {
	var request api.RegenerateContentRequest
	var contextFile string

	regenerate := &cobra.Command{
		Use:   "regenerate <post-id>",
		Short: "Regenerate a single post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request.PostID = args[0]

			var err error
			if request.BusinessContext, err = loadDocument(contextFile); err != nil {
				return err
			}

			post, err := app.Client.RegenerateContent(cmd.Context(), request)
			if err != nil {
				return err
			}
			return printJSON(post)
		},
	}

	regenerate.Flags().StringVar(&request.CampaignID, "campaign", "", "campaign id")
	regenerate.Flags().StringVar(&request.Platform, "platform", "", "target platform")
	regenerate.Flags().StringVar(&request.PostType, "type", "", "post type")
	regenerate.Flags().StringVar(&contextFile, "context", "", "business context JSON file")

	return regenerate
}

func newBulkCmd(app *App) *cobra.Command {
	var request api.GenerateContentRequest
	var contextFile, guidanceFile string

	bulk := &cobra.Command{
		Use:   "bulk",
		Short: "Generate content for all platforms in one call",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePlatforms(request.Platforms); err != nil {
				return err
			}

			var err error
			if request.BusinessContext, err = loadDocument(contextFile); err != nil {
				return err
			}
			if request.CampaignGuidance, err = loadDocument(guidanceFile); err != nil {
				return err
			}

			content, err := app.Client.GenerateBulkContent(cmd.Context(), request)
			if err != nil {
				guid := xid.New().String()
				log.Err(err).Str("guid", guid).Msg("bulk generation failed")
				return err
			}
			return printJSON(content)
		},
	}

	bulk.Flags().StringVar(&request.CampaignID, "campaign", "", "campaign id")
	bulk.Flags().StringSliceVar(&request.Platforms, "platforms", nil, "target platforms")
	bulk.Flags().IntVar(&request.PostCount, "count", 0, "number of posts per platform")
	bulk.Flags().StringVar(&contextFile, "context", "", "business context JSON file")
	bulk.Flags().StringVar(&guidanceFile, "guidance", "", "campaign guidance JSON file")

	return bulk
}
