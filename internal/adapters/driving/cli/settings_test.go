package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitechat/internal/adapters/driven/config/file"
)

// setupTestConfig swaps in a real store backed by a temp dir.
func setupTestConfig(t *testing.T) func() {
	t.Helper()
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	old := configStore
	configStore = store
	return func() {
		configStore = old
	}
}

func TestSettingsCmd_ListShowsKnownKeys(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "chat_model = gpt-4o-mini")
	assert.Contains(t, out, "chunk_size = 1200")
	assert.Contains(t, out, "top_k = 6")
}

func TestSettingsCmd_SetAndGet(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"settings", "set", "chat_model", "gpt-4o"})
	err := rootCmd.Execute()
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "get", "chat_model"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o\n", buf.String())
}

func TestSettingsCmd_SetIntegerKey(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"settings", "set", "top_k", "9"})
	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, 9, configStore.GetInt(file.KeyTopK))

	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"settings", "set", "top_k", "lots"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs an integer value")
}

func TestSettingsCmd_UnknownKey(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"settings", "get", "nope"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestSettingsCmd_MasksAPIKey(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	require.NoError(t, configStore.Set(file.KeyAPIKey, "sk-verysecretvalue42"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "get", "api_key"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "sk-v...ue42\n", buf.String())
	assert.NotContains(t, buf.String(), "verysecret")
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-1...wxyz", maskAPIKey("sk-1234567890wxyz"))
}
