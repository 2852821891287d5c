package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/xid"
	"github.com/spf13/cobra"
)

func newKeyCmd(app *App) *cobra.Command {
	key := &cobra.Command{
		Use:   "key",
		Short: "Manage the Gemini API key",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the configured key (masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			value := app.Settings.GeminiKey()
			if value == "" {
				fmt.Println("no key configured")
				return nil
			}
			fmt.Println(mask(value))
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key>",
		Short: "Store the key locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Settings.SetGeminiKey(args[0]); err != nil {
				guid := xid.New().String()
				log.Err(err).Str("guid", guid).Msg("failed to store key")
				return err
			}
			fmt.Println("key stored")
			return nil
		},
	}

	push := &cobra.Command{
		Use:   "push",
		Short: "Register the stored key with the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			value := app.Settings.GeminiKey()
			if value == "" {
				return fmt.Errorf("no key configured, run 'postpilot key set' first")
			}
			if err := app.Client.PushGeminiKey(cmd.Context(), value); err != nil {
				return err
			}
			fmt.Println("key registered with backend")
			return nil
		},
	}

	key.AddCommand(show, set, push)
	return key
}

func mask(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
}
