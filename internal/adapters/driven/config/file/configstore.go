package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/sitechat/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Configuration keys.
const (
	KeyAPIKey       = "api_key"
	KeyBaseURL      = "base_url"
	KeyChatModel    = "chat_model"
	KeyEmbedModel   = "embed_model"
	KeyDataDir      = "data_dir"
	KeyMaxPages     = "max_pages"
	KeyMaxDepth     = "max_depth"
	KeyChunkSize    = "chunk_size"
	KeyChunkOverlap = "chunk_overlap"
	KeyTopK         = "top_k"
)

// Defaults applied when a key is unset.
var defaults = map[string]any{
	KeyChatModel:    "gpt-4o-mini",
	KeyEmbedModel:   "text-embedding-3-small",
	KeyMaxPages:     50,
	KeyMaxDepth:     2,
	KeyChunkSize:    1200,
	KeyChunkOverlap: 200,
	KeyTopK:         6,
}

// KnownKeys lists the configuration surface, for the settings command.
var KnownKeys = []string{
	KeyAPIKey,
	KeyBaseURL,
	KeyChatModel,
	KeyEmbedModel,
	KeyDataDir,
	KeyMaxPages,
	KeyMaxDepth,
	KeyChunkSize,
	KeyChunkOverlap,
	KeyTopK,
}

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.sitechat/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".sitechat")
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Get retrieves a configuration value by key, falling back to the
// declared default for the key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if val, ok := s.data[key]; ok {
		return val, true
	}
	if key == KeyAPIKey {
		if env := os.Getenv("OPENAI_API_KEY"); env != "" {
			return env, true
		}
	}
	val, ok := defaults[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}
	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	// TOML integers are parsed as int64.
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0o600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	parsed := make(map[string]any)
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return err
	}

	s.data = parsed
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
