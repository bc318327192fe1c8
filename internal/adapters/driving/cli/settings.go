package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitechat/internal/adapters/driven/config/file"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change configuration values stored in the config file.

Known keys:
  api_key, base_url, chat_model, embed_model, data_dir,
  max_pages, max_depth, chunk_size, chunk_overlap, top_k`,
	RunE: runSettingsList,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all settings",
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Config file: %s\n\n", configStore.Path())
	for _, key := range file.KnownKeys {
		cmd.Printf("  %s = %s\n", key, displayValue(key))
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	if !knownKey(args[0]) {
		return fmt.Errorf("unknown key %q", args[0])
	}

	cmd.Println(displayValue(args[0]))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	key, raw := args[0], args[1]
	if !knownKey(key) {
		return fmt.Errorf("unknown key %q", key)
	}

	// Numeric keys are stored as integers.
	var value any = raw
	if n, err := strconv.Atoi(raw); err == nil && isIntKey(key) {
		value = n
	} else if isIntKey(key) {
		return fmt.Errorf("key %q needs an integer value", key)
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("save setting: %w", err)
	}
	cmd.Printf("%s = %s\n", key, raw)
	return nil
}

func displayValue(key string) string {
	if isIntKey(key) {
		return strconv.Itoa(configStore.GetInt(key))
	}
	v := configStore.GetString(key)
	if key == file.KeyAPIKey && v != "" {
		return maskAPIKey(v)
	}
	if v == "" {
		return "(not set)"
	}
	return v
}

func knownKey(key string) bool {
	for _, k := range file.KnownKeys {
		if k == key {
			return true
		}
	}
	return false
}

func isIntKey(key string) bool {
	switch key {
	case file.KeyMaxPages, file.KeyMaxDepth, file.KeyChunkSize, file.KeyChunkOverlap, file.KeyTopK:
		return true
	}
	return false
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
