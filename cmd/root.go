package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/postpilot/postpilot/api"
	"github.com/postpilot/postpilot/logger"
	"github.com/postpilot/postpilot/settings"
	"github.com/spf13/cobra"
)

var log = logger.New("cmd")

// App bundles the dependencies the command tree needs.
type App struct {
	Settings *settings.Service
	Client   *api.Client
}

func Execute(ctx context.Context, app *App) error {
	root := &cobra.Command{
		Use:           "postpilot",
		Short:         "Client for the postpilot marketing-campaign backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCampaignsCmd(app),
		newGenerateCmd(app),
		newRegenerateCmd(app),
		newBulkCmd(app),
		newVisualsCmd(app),
		newAnalyzeCmd(app),
		newKeyCmd(app),
	)

	return root.ExecuteContext(ctx)
}

// printJSON renders API results for the terminal.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// loadDocument reads an opaque context payload (business context, campaign
// guidance) from a JSON file. The schema is the backend's business.
func loadDocument(path string) (api.Document, error) {
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc api.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid context document %s: %w", path, err)
	}
	return doc, nil
}
