package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the indexed sites",
	RunE:  runSites,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the current index",
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(sitesCmd)
	rootCmd.AddCommand(clearCmd)
}

func runSites(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	sites, err := chatService.Sites(cmd.Context())
	if err != nil {
		return fmt.Errorf("list sites failed: %w", err)
	}

	if len(sites) == 0 {
		cmd.Println("No sites indexed. Run 'sitechat ingest' first.")
		return nil
	}
	for _, s := range sites {
		cmd.Println(s)
	}
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	if err := chatService.Clear(); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	cmd.Println("Index cleared.")
	return nil
}
