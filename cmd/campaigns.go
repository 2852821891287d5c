package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/postpilot/postpilot/api"
	"github.com/rs/xid"
	"github.com/spf13/cobra"
)

func newCampaignsCmd(app *App) *cobra.Command {
	campaigns := &cobra.Command{
		Use:   "campaigns",
		Short: "Manage campaigns",
	}

	var page, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Client.ListCampaigns(cmd.Context(), page, limit)
			if err != nil {
				guid := xid.New().String()
				log.Err(err).Str("guid", guid).Msg("failed to list campaigns")
				return err
			}
			return printJSON(result)
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&limit, "limit", 20, "page size")

	var request api.CreateCampaignRequest
	var attachments []string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, closeFiles, err := openUploads(attachments)
			if err != nil {
				return err
			}
			defer closeFiles()

			request.Files = files
			campaign, err := app.Client.CreateCampaign(cmd.Context(), request)
			if err != nil {
				guid := xid.New().String()
				log.Err(err).Str("guid", guid).Msg("failed to create campaign")
				return err
			}
			return printJSON(campaign)
		},
	}
	create.Flags().StringVar(&request.Name, "name", "", "campaign name")
	create.Flags().StringVar(&request.BusinessDescription, "description", "", "business description")
	create.Flags().StringVar(&request.BusinessWebsite, "website", "", "business website")
	create.Flags().StringVar(&request.Objective, "objective", "", "campaign objective")
	create.Flags().StringVar(&request.CampaignType, "type", "", "campaign type")
	create.Flags().IntVar(&request.CreativityLevel, "creativity", 5, "creativity level")
	create.Flags().StringArrayVar(&attachments, "file", nil, "file attachment (repeatable)")
	_ = create.MarkFlagRequired("name")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			campaign, err := app.Client.GetCampaign(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(campaign)
		},
	}

	var updateFile string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a campaign from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(updateFile)
			if err != nil {
				return err
			}

			var campaign api.Campaign
			if err := json.Unmarshal(raw, &campaign); err != nil {
				return fmt.Errorf("invalid campaign file %s: %w", updateFile, err)
			}

			updated, err := app.Client.UpdateCampaign(cmd.Context(), args[0], campaign)
			if err != nil {
				return err
			}
			return printJSON(updated)
		},
	}
	update.Flags().StringVar(&updateFile, "from", "", "path to campaign JSON")
	_ = update.MarkFlagRequired("from")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.DeleteCampaign(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("deleted", args[0])
			return nil
		},
	}

	campaigns.AddCommand(list, create, get, update, del)
	return campaigns
}

// openUploads opens the given paths as multipart uploads. The returned
// closer must be called after the request finishes.
func openUploads(paths []string) ([]api.MultiPartFile, func(), error) {
	var files []api.MultiPartFile
	var handles []*os.File

	closeAll := func() {
		for _, handle := range handles {
			if err := handle.Close(); err != nil {
				log.Err(err).Str("file", handle.Name()).Msg("failed to close upload")
			}
		}
	}

	for _, path := range paths {
		handle, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		handles = append(handles, handle)
		files = append(files, api.MultiPartFile{
			FieldName: "files",
			FileName:  filepath.Base(path),
			Content:   handle,
		})
	}

	return files, closeAll, nil
}
