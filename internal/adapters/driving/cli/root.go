// Package cli implements the command-line driving adapter.
// Commands talk to the core exclusively through the driving ports;
// the concrete services are injected by main before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitechat/internal/core/ports/driven"
	"github.com/custodia-labs/sitechat/internal/core/ports/driving"
	"github.com/custodia-labs/sitechat/internal/logger"
)

// version is set from main at build time.
var version = "dev"

var verbose bool

// Injected services. Nil until main wires them.
var (
	chatService driving.ChatService
	configStore driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "sitechat",
	Short: "Chat with the content of your websites",
	Long: `Sitechat crawls websites you point it at, indexes their text and
answers questions grounded on that content.

Typical workflow:
  sitechat ingest https://docs.example.com
  sitechat ask "How do I configure the widget?"
  sitechat chat`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetChatService injects the chat service used by all commands.
func SetChatService(s driving.ChatService) {
	chatService = s
}

// SetConfigStore injects the config store used by the settings command.
func SetConfigStore(c driven.ConfigStore) {
	configStore = c
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
