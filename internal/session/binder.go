// Package session binds the active conversation to a live external
// assistant session and mediates between callers, the transcript store and
// the text-generation service.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Shabari-K-S/Medicare/internal/llm"
	"github.com/Shabari-K-S/Medicare/internal/transcript"
)

var (
	// ErrConversationNotFound is returned when an operation targets an
	// identifier absent from the transcript store.
	ErrConversationNotFound = errors.New("conversation not found")
	// ErrSendInFlight is returned when a send is attempted while another
	// one is still pending on this binder.
	ErrSendInFlight = errors.New("a message is already in flight")
)

// ExternalSession is an opaque handle on a live assistant session. Each
// binding opens a blank session: stored history is replayed to the caller
// for display but never fed back to the service.
type ExternalSession struct {
	id      uuid.UUID
	history []*llm.Message
}

// ID of this session handle.
func (s *ExternalSession) ID() uuid.UUID {
	return s.id
}

func newExternalSession() *ExternalSession {
	return &ExternalSession{id: uuid.New()}
}

// Options for a binder.
type Options struct {
	// Model used for assistant replies.
	Model string
	// AssistantName is the sender label on assistant messages.
	AssistantName string
	// RequestTimeout bounds each call to the external service. Zero means
	// no timeout.
	RequestTimeout time.Duration
}

// Binder owns the "active conversation" state of one chat view. It is not
// safe for concurrent use by multiple views; each view owns its binder.
type Binder struct {
	store   *transcript.Store
	client  llm.Client
	options Options

	mu       sync.Mutex
	activeID string
	session  *ExternalSession
	inFlight bool
}

// Send is a pending assistant reply. Done delivers exactly one message: the
// assistant's reply, or a synthesized error entry if the service failed.
type Send struct {
	// ConversationID the reply belongs to.
	ConversationID string
	// Done delivers the appended assistant message.
	Done <-chan *transcript.Message
}

// NewBinder over the given store and client.
func NewBinder(store *transcript.Store, client llm.Client, options Options) *Binder {
	if options.AssistantName == "" {
		options.AssistantName = "Assistant"
	}
	return &Binder{store: store, client: client, options: options}
}

// ActiveID returns the active conversation identifier, or "" when unbound.
func (b *Binder) ActiveID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.activeID
}

// SessionHandle returns the live external session handle, or nil when
// unbound.
func (b *Binder) SessionHandle() *ExternalSession {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session
}

// BindToNew creates a conversation, opens a fresh external session and makes
// the pair active.
func (b *Binder) BindToNew(title string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bindToNewLocked(title)
}

func (b *Binder) bindToNewLocked(title string) (string, error) {
	id, err := b.store.CreateConversation(title)
	if err != nil {
		return "", errors.Wrap(err, "creating conversation")
	}
	b.activeID = id
	b.session = newExternalSession()
	return id, nil
}

// BindToExisting makes the given conversation active and returns its stored
// messages for redisplay. Rebinding to the already-active conversation is a
// no-op that returns nil messages: no new session is opened and nothing is
// replayed twice. The previous binding is kept intact when the identifier is
// unknown.
func (b *Binder) BindToExisting(id string) ([]*transcript.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if id == b.activeID && b.session != nil {
		return nil, nil
	}

	conversation := b.store.GetConversation(id)
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	// The old handle is simply dropped; a rebind always starts a blank
	// external session even though the stored messages are redisplayed.
	b.activeID = id
	b.session = newExternalSession()
	return conversation.Messages, nil
}

// Rename retitles the active conversation. A no-op when unbound.
func (b *Binder) Rename(title string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.activeID == "" {
		return nil
	}
	return errors.Wrap(b.store.RenameConversation(b.activeID, title), "renaming conversation")
}

// Unbind drops the active conversation and discards the session handle.
func (b *Binder) Unbind() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.activeID = ""
	b.session = nil
}

// DeleteActive deletes the active conversation from the store and unbinds.
// A no-op when unbound. The caller decides whether to bind a new
// conversation afterwards.
func (b *Binder) DeleteActive() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.activeID == "" {
		return nil
	}
	if err := b.store.DeleteConversation(b.activeID); err != nil {
		return errors.Wrap(err, "deleting conversation")
	}
	b.activeID = ""
	b.session = nil
	return nil
}

// SendUserMessage durably appends the operator's message, then asks the
// external service for a reply on a background worker. When unbound it first
// binds to a new conversation seeded by this message. Only one send may be
// in flight at a time; a second one is rejected with ErrSendInFlight.
//
// Service failures never surface as errors: they are appended to the
// transcript as an assistant message embedding the error description.
func (b *Binder) SendUserMessage(ctx context.Context, text string) (*Send, error) {
	b.mu.Lock()
	if b.inFlight {
		b.mu.Unlock()
		return nil, ErrSendInFlight
	}
	if b.activeID == "" {
		if _, err := b.bindToNewLocked(""); err != nil {
			b.mu.Unlock()
			return nil, err
		}
	}
	id := b.activeID
	session := b.session

	// The operator message is durable before the service is called, even
	// if the call subsequently fails.
	if err := b.store.AppendMessage(id, transcript.OperatorSender, text); err != nil {
		b.mu.Unlock()
		return nil, errors.Wrap(err, "appending operator message")
	}
	b.inFlight = true
	b.mu.Unlock()

	done := make(chan *transcript.Message, 1)
	go b.generateReply(ctx, id, session, text, done)
	return &Send{ConversationID: id, Done: done}, nil
}

// generateReply runs on a worker goroutine so the caller's loop is never
// blocked by the network round trip.
func (b *Binder) generateReply(ctx context.Context, id string, session *ExternalSession, text string, done chan<- *transcript.Message) {
	reply, err := b.complete(ctx, session, text)
	if err != nil {
		reply = fmt.Sprintf("Sorry, I encountered an error: %s", err)
	}

	message := &transcript.Message{
		Sender:    b.options.AssistantName,
		Body:      reply,
		Timestamp: time.Now(),
	}
	if err := b.store.AppendMessage(id, message.Sender, message.Body); err != nil {
		// The reply still reaches the caller; only durability was lost.
		log.Error().Err(err).Str("conversation", id).Msg("persisting assistant reply")
	}

	b.mu.Lock()
	b.inFlight = false
	b.mu.Unlock()

	done <- message
	close(done)
}

// complete sends the framed prompt to the external service and records the
// exchange in the session's in-memory history.
func (b *Binder) complete(ctx context.Context, session *ExternalSession, text string) (string, error) {
	if b.options.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.options.RequestTimeout)
		defer cancel()
	}

	prompt := fmt.Sprintf("%s\n\nprompt: %s", llm.CheckupAssistantPreamble, text)
	userMessage := &llm.Message{Role: llm.UserRole, Content: prompt}
	messages := append(append([]*llm.Message{}, session.history...), userMessage)

	reply, err := b.client.CreateTextGeneration(ctx, &llm.CreateTextGenerationRequest{
		Model:    b.options.Model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}

	session.history = append(session.history, userMessage, &llm.Message{Role: llm.AssistantRole, Content: reply})
	return reply, nil
}
