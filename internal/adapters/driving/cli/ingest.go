package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitechat/internal/core/ports/driving"
)

var (
	ingestMaxPages int
	ingestMaxDepth int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [url...]",
	Short: "Crawl websites and build the index",
	Long: `Crawls the given URLs, stays within their hosts, chunks the extracted
text and rebuilds the search index. The previous index is replaced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().IntVar(&ingestMaxPages, "max-pages", 0, "maximum pages to crawl (0 = configured default)")
	ingestCmd.Flags().IntVar(&ingestMaxDepth, "max-depth", 0, "maximum link depth (0 = configured default)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	report, err := chatService.Ingest(cmd.Context(), driving.IngestRequest{
		URLs:     args,
		MaxPages: ingestMaxPages,
		MaxDepth: ingestMaxDepth,
	})
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d pages into %d chunks\n", report.Pages, report.Chunks)
	cmd.Println("Sites:")
	for _, d := range report.Domains {
		cmd.Printf("  %s\n", d)
	}
	return nil
}
