package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// IndexEntry records one conversation this client has touched. The index is
// a convenience cache for offline listing; the API remains authoritative.
type IndexEntry struct {
	ConversationID string `yaml:"conversation_id"`
	Name           string `yaml:"name,omitempty"`
	LastPrompt     string `yaml:"last_prompt,omitempty"`
	MessageCount   int    `yaml:"message_count"`
	UpdatedAt      string `yaml:"updated_at,omitempty"`
}

// Index is the YAML index of locally seen conversations.
type Index struct {
	Conversations []IndexEntry `yaml:"conversations"`
}

// IndexManager reads and writes the conversation index file.
type IndexManager struct {
	dir string
}

// NewIndexManager creates an index manager rooted at the state directory.
func NewIndexManager(dir string) *IndexManager {
	return &IndexManager{dir: dir}
}

// Path returns the index file path.
func (m *IndexManager) Path() string {
	return filepath.Join(m.dir, "conversations.yaml")
}

// Load reads the index. A missing file yields an empty index.
func (m *IndexManager) Load() (*Index, error) {
	data, err := os.ReadFile(m.Path())
	if os.IsNotExist(err) {
		return &Index{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	var index Index
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}
	return &index, nil
}

// Save writes the index.
func (m *IndexManager) Save(index *Index) error {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	return os.WriteFile(m.Path(), data, 0644)
}

// Touch upserts an entry and persists the index. The entry's UpdatedAt is
// stamped with the current time when empty; zero-valued fields keep the
// existing entry's values so partial updates never erase data.
func (m *IndexManager) Touch(entry IndexEntry) error {
	index, err := m.Load()
	if err != nil {
		return err
	}

	if entry.UpdatedAt == "" {
		entry.UpdatedAt = time.Now().Format(time.RFC3339)
	}

	found := false
	for i, existing := range index.Conversations {
		if existing.ConversationID == entry.ConversationID {
			if entry.Name == "" {
				entry.Name = existing.Name
			}
			if entry.LastPrompt == "" {
				entry.LastPrompt = existing.LastPrompt
			}
			if entry.MessageCount == 0 {
				entry.MessageCount = existing.MessageCount
			}
			index.Conversations[i] = entry
			found = true
			break
		}
	}
	if !found {
		index.Conversations = append(index.Conversations, entry)
	}

	return m.Save(index)
}
