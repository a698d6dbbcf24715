package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Shabari-K-S/Medicare/internal/file"
)

var defaultConfig = Config{
	OpenaiAPIKey:   "API_KEY",
	OpenaiAPIHost:  "https://api.openai.com/v1",
	RequestTimeout: 60,

	Chat: &ChatConfig{
		DefaultModel:  "gpt-4o-mini",
		AssistantName: "Assistant",
		File:          "~/.config/medicare/chat.json",
	},

	Hospital: &HospitalConfig{
		Database:    "~/.config/medicare/hospital.db",
		SessionFile: "~/.config/medicare/user_session.txt",
	},
}

// Config holds configuration for the medicare tool.
type Config struct {
	OpenaiAPIKey   string `json:"openai_api_key"`
	OpenaiAPIHost  string `json:"openai_api_host"`
	RequestTimeout int    `json:"request_timeout"`

	Chat     *ChatConfig     `json:"chat"`
	Hospital *HospitalConfig `json:"hospital"`
}

// ChatConfig holds configuration for the chat assistant.
type ChatConfig struct {
	// The model used for assistant replies.
	DefaultModel string `json:"default_model"`
	// Display name used as the sender label on assistant messages.
	AssistantName string `json:"assistant_name"`
	// The file where we store chat transcripts.
	File string `json:"file"`
}

// HospitalConfig holds configuration for the hospital records store.
type HospitalConfig struct {
	// Path of the sqlite database.
	Database string `json:"database"`
	// Plaintext handoff file written on login and read by the main flow.
	SessionFile string `json:"session_file"`
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}

	expandedChatFile, err := file.ExpandPath(config.Chat.File)
	if err != nil {
		return nil, errors.Wrap(err, "expanding chat file path")
	}
	config.Chat.File = expandedChatFile

	expandedDatabase, err := file.ExpandPath(config.Hospital.Database)
	if err != nil {
		return nil, errors.Wrap(err, "expanding database path")
	}
	config.Hospital.Database = expandedDatabase

	expandedSessionFile, err := file.ExpandPath(config.Hospital.SessionFile)
	if err != nil {
		return nil, errors.Wrap(err, "expanding session file path")
	}
	config.Hospital.SessionFile = expandedSessionFile
	return config, nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
