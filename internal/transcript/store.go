// Package transcript implements the durable chat transcript store: every
// conversation lives in a single JSON file which is read in full at startup
// and rewritten in full on every mutation.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Shabari-K-S/Medicare/internal/file"
)

// OperatorSender is the sender label used for the human operator.
const OperatorSender = "You"

// maxTitleLength is the number of characters of the first operator message
// used as the conversation title.
const maxTitleLength = 30

// Message is a single transcript entry. Once appended it is immutable.
type Message struct {
	Sender    string    `json:"sender"`
	Body      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is one chat thread. Messages are in transcript order and
// only ever grow.
type Conversation struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Messages  []*Message `json:"messages"`
}

func (c *Conversation) clone() *Conversation {
	copied := *c
	copied.Messages = make([]*Message, len(c.Messages))
	for i, message := range c.Messages {
		messageCopy := *message
		copied.Messages[i] = &messageCopy
	}
	return &copied
}

// document is the on-disk layout. Conversations live under a named top-level
// field so future metadata can be added without breaking the schema.
type document struct {
	Chats []*Conversation `json:"chats"`
}

// Store implements a local store for chat transcripts.
type Store struct {
	mu            sync.Mutex
	path          string
	conversations []*Conversation
}

// New store. The backing file is read once; a missing or corrupt file
// degrades to an empty store rather than failing.
func New(path string) (*Store, error) {
	if err := file.CreateDirectoryIfNotExist(filepath.Dir(path)); err != nil {
		return nil, errors.Wrap(err, "creating directory")
	}
	s := &Store{path: path}
	s.load()
	return s, nil
}

// load reads all conversations from the backing file. Read and parse
// failures are logged and degrade to an empty collection.
func (s *Store) load() {
	bytes, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("path", s.path).Msg("reading chat store, starting empty")
		}
		return
	}
	doc := &document{}
	if err := json.Unmarshal(bytes, doc); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("corrupt chat store, starting empty")
		return
	}
	s.conversations = doc.Chats
}

// save rewrites the backing file in full. Failures propagate: the in-memory
// and durable state would otherwise silently diverge.
func (s *Store) save() error {
	bytes, err := json.MarshalIndent(&document{Chats: s.conversations}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling chat store")
	}
	if err := os.WriteFile(s.path, bytes, 0644); err != nil {
		return errors.Wrap(err, "writing chat store")
	}
	return nil
}

// ListConversations returns all conversations, unsorted. Sorting is the
// caller's responsibility.
func (s *Store) ListConversations() []*Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	conversations := make([]*Conversation, 0, len(s.conversations))
	for _, conversation := range s.conversations {
		conversations = append(conversations, conversation.clone())
	}
	return conversations
}

// CreateConversation generates a fresh conversation and persists it
// immediately, returning its identifier. An empty title defaults to "Chat N".
func (s *Store) CreateConversation(title string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if title == "" {
		title = fmt.Sprintf("Chat %d", len(s.conversations)+1)
	}

	now := time.Now()
	id := s.nextID(now)
	conversation := &Conversation{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []*Message{},
	}
	s.conversations = append(s.conversations, conversation)
	if err := s.save(); err != nil {
		return "", err
	}
	return id, nil
}

// nextID composes a sequence number with a second-granularity timestamp. The
// sequence is derived from the conversation count and bumped past collisions
// so two creations within the same clock second stay unique.
func (s *Store) nextID(now time.Time) string {
	sequence := len(s.conversations) + 1
	for {
		id := fmt.Sprintf("chat_%d_%s", sequence, now.Format("20060102150405"))
		if s.find(id) == nil {
			return id
		}
		sequence++
	}
}

func (s *Store) find(id string) *Conversation {
	for _, conversation := range s.conversations {
		if conversation.ID == id {
			return conversation
		}
	}
	return nil
}

// GetConversation returns the conversation with the given identifier, or nil
// if it does not exist.
func (s *Store) GetConversation(id string) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	conversation := s.find(id)
	if conversation == nil {
		return nil
	}
	return conversation.clone()
}

// AppendMessage appends a message with the current timestamp and persists
// immediately. Appending to a nonexistent conversation is a silent no-op.
// The first operator message of a conversation becomes its title, truncated
// to 30 characters with an ellipsis marker if longer.
func (s *Store) AppendMessage(id, sender, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversation := s.find(id)
	if conversation == nil {
		return nil
	}

	now := time.Now()
	conversation.Messages = append(conversation.Messages, &Message{
		Sender:    sender,
		Body:      body,
		Timestamp: now,
	})
	conversation.UpdatedAt = now

	if len(conversation.Messages) == 1 && sender == OperatorSender {
		conversation.Title = truncateTitle(body)
	}

	return s.save()
}

// RenameConversation overwrites the title if the conversation exists and
// persists immediately.
func (s *Store) RenameConversation(id, newTitle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversation := s.find(id)
	if conversation == nil {
		return nil
	}
	conversation.Title = newTitle
	return s.save()
}

// DeleteConversation removes the conversation if present and persists
// immediately. Deleting a nonexistent identifier is a no-op.
func (s *Store) DeleteConversation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, conversation := range s.conversations {
		if conversation.ID == id {
			s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
			return s.save()
		}
	}
	return nil
}

// truncateTitle derives a conversation title from a message body, rune-safe.
func truncateTitle(body string) string {
	runes := []rune(body)
	if len(runes) <= maxTitleLength {
		return body
	}
	return string(runes[:maxTitleLength]) + "..."
}
