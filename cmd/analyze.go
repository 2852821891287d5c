package cmd

import (
	"github.com/rs/xid"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	analyze := &cobra.Command{
		Use:   "analyze",
		Short: "Extract business context from websites or files",
	}

	var analysisType string
	analyzeURL := &cobra.Command{
		Use:   "url <url>",
		Short: "Analyze a website",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := app.Client.AnalyzeURL(cmd.Context(), args[0], analysisType)
			if err != nil {
				guid := xid.New().String()
				log.Err(err).Str("guid", guid).Str("url", args[0]).Msg("url analysis failed")
				return err
			}
			return printJSON(analysis)
		},
	}
	analyzeURL.Flags().StringVar(&analysisType, "type", "", "analysis type")

	analyzeFiles := &cobra.Command{
		Use:   "files <path>...",
		Short: "Analyze uploaded files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, closeFiles, err := openUploads(args)
			if err != nil {
				return err
			}
			defer closeFiles()

			analysis, err := app.Client.AnalyzeFiles(cmd.Context(), files)
			if err != nil {
				return err
			}
			return printJSON(analysis)
		},
	}

	analyze.AddCommand(analyzeURL, analyzeFiles)
	return analyze
}
