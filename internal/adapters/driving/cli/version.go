package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("sitechat version %s\n", version)
	},
}

var healthCmd = &cobra.Command{
	Use:    "health",
	Short:  "Report liveness",
	Hidden: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if chatService == nil {
			return errors.New("chat service not configured")
		}
		if err := chatService.Health(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(healthCmd)
}
