// Command sitechat is a retrieval-augmented chat over websites you ingest.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/sitechat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sitechat/internal/adapters/driven/crawler/web"
	"github.com/custodia-labs/sitechat/internal/adapters/driven/embedding/batched"
	embopenai "github.com/custodia-labs/sitechat/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/sitechat/internal/adapters/driven/index/flat"
	llmopenai "github.com/custodia-labs/sitechat/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/sitechat/internal/adapters/driving/cli"
	"github.com/custodia-labs/sitechat/internal/core/services"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	dataDir := configStore.GetString(file.KeyDataDir)
	if dataDir == "" {
		dataDir = filepath.Join(filepath.Dir(configStore.Path()), "data")
	}

	cli.SetVersion(version)
	cli.SetConfigStore(configStore)

	// The chat service needs provider credentials. Without a key the
	// settings and version commands still work; everything else reports
	// that the service is not configured.
	if apiKey := configStore.GetString(file.KeyAPIKey); apiKey != "" {
		embedder, err := embopenai.NewEmbeddingService(embopenai.Config{
			APIKey:  apiKey,
			BaseURL: configStore.GetString(file.KeyBaseURL),
			Model:   configStore.GetString(file.KeyEmbedModel),
		})
		if err != nil {
			return fmt.Errorf("embedding service: %w", err)
		}

		llm, err := llmopenai.NewLLMService(llmopenai.Config{
			APIKey:  apiKey,
			BaseURL: configStore.GetString(file.KeyBaseURL),
			Model:   configStore.GetString(file.KeyChatModel),
		})
		if err != nil {
			return fmt.Errorf("llm service: %w", err)
		}

		batchedEmbedder := batched.New(embedder, batched.DefaultMaxTokens)
		indexRepo := flat.NewRepository(dataDir, batchedEmbedder)
		crawler := web.New(web.Config{})

		cli.SetChatService(services.NewRagService(
			crawler,
			indexRepo,
			llm,
			services.NewSessionStore(),
			services.Settings{
				ChunkSize:    configStore.GetInt(file.KeyChunkSize),
				ChunkOverlap: configStore.GetInt(file.KeyChunkOverlap),
				TopK:         configStore.GetInt(file.KeyTopK),
				MaxPages:     configStore.GetInt(file.KeyMaxPages),
				MaxDepth:     configStore.GetInt(file.KeyMaxDepth),
			},
		))
	}

	return cli.Execute()
}
