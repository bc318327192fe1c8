package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available generation models",
	Long: `Lists the generation models the configured provider offers.
The currently selected model is marked with an asterisk.`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	models, err := chatService.Models(cmd.Context())
	if err != nil {
		return fmt.Errorf("list models failed: %w", err)
	}

	selected := chatService.SelectedModel()
	for _, m := range models {
		marker := " "
		if m == selected {
			marker = "*"
		}
		cmd.Printf("%s %s\n", marker, m)
	}
	return nil
}
