package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInitializesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	config, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", config.Chat.DefaultModel)
	assert.Equal(t, "Assistant", config.Chat.AssistantName)
	assert.Equal(t, 60, config.RequestTimeout)
	assert.NotNil(t, config.Hospital)

	// The default file is written out for next time.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestParseExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := Config{
		OpenaiAPIKey:   "key",
		OpenaiAPIHost:  "https://api.openai.com/v1",
		RequestTimeout: 10,
		Chat: &ChatConfig{
			DefaultModel:  "gpt-4o-mini",
			AssistantName: "Assistant",
			File:          "~/chats/chat.json",
		},
		Hospital: &HospitalConfig{
			Database:    "~/hospital.db",
			SessionFile: "~/user_session.txt",
		},
	}
	bytes, err := json.Marshal(content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, bytes, 0644))

	config, err := Parse(path)
	require.NoError(t, err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "chats/chat.json"), config.Chat.File)
	assert.Equal(t, filepath.Join(home, "hospital.db"), config.Hospital.Database)
	assert.Equal(t, filepath.Join(home, "user_session.txt"), config.Hospital.SessionFile)
}
