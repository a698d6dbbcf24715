package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shabari-K-S/Medicare/internal/llm"
	"github.com/Shabari-K-S/Medicare/internal/transcript"
)

// stubClient returns a canned reply or error, optionally after blocking on
// a gate channel.
type stubClient struct {
	reply string
	err   error
	gate  chan struct{}
	calls int
}

func (c *stubClient) CreateTextGeneration(ctx context.Context, request *llm.CreateTextGenerationRequest) (string, error) {
	c.calls++
	if c.gate != nil {
		<-c.gate
	}
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func newTestBinder(t *testing.T, client llm.Client) (*Binder, *transcript.Store) {
	t.Helper()
	store, err := transcript.New(filepath.Join(t.TempDir(), "chat.json"))
	require.NoError(t, err)
	binder := NewBinder(store, client, Options{Model: "gpt-4o-mini", AssistantName: "Assistant"})
	return binder, store
}

func awaitReply(t *testing.T, send *Send) *transcript.Message {
	t.Helper()
	select {
	case message := <-send.Done:
		return message
	case <-time.After(5 * time.Second):
		t.Fatal("no reply delivered")
		return nil
	}
}

func TestSendUserMessageHappyPath(t *testing.T) {
	client := &stubClient{reply: "Normal BP for 65-year-old adults: below 120/80 mmHg."}
	binder, store := newTestBinder(t, client)

	question := "What's the normal BP for a 65 year old?"
	send, err := binder.SendUserMessage(context.Background(), question)
	require.NoError(t, err)

	reply := awaitReply(t, send)
	assert.Equal(t, "Assistant", reply.Sender)
	assert.Contains(t, reply.Body, "Normal BP")

	conversation := store.GetConversation(send.ConversationID)
	require.NotNil(t, conversation)
	require.Len(t, conversation.Messages, 2)
	assert.Equal(t, transcript.OperatorSender, conversation.Messages[0].Sender)
	assert.Equal(t, question, conversation.Messages[0].Body)
	assert.Equal(t, "Assistant", conversation.Messages[1].Sender)
	assert.Equal(t, string([]rune(question)[:30])+"...", conversation.Title)
	assert.False(t, conversation.UpdatedAt.Before(conversation.CreatedAt))
}

func TestSendUserMessageServiceErrorBecomesTranscriptEntry(t *testing.T) {
	client := &stubClient{err: errors.New("upstream unavailable")}
	binder, store := newTestBinder(t, client)

	send, err := binder.SendUserMessage(context.Background(), "hi")
	require.NoError(t, err)

	reply := awaitReply(t, send)
	assert.True(t, strings.HasPrefix(reply.Body, "Sorry, I encountered an error:"), reply.Body)
	assert.Contains(t, reply.Body, "upstream unavailable")

	conversation := store.GetConversation(send.ConversationID)
	require.Len(t, conversation.Messages, 2)
	assert.True(t, strings.HasPrefix(conversation.Messages[1].Body, "Sorry, I encountered an error:"))
}

func TestReplyDeliveredEvenWhenPersistingItFails(t *testing.T) {
	client := &stubClient{reply: "Drink plenty of fluids.", gate: make(chan struct{})}
	path := filepath.Join(t.TempDir(), "chat.json")
	store, err := transcript.New(path)
	require.NoError(t, err)
	binder := NewBinder(store, client, Options{Model: "gpt-4o-mini", AssistantName: "Assistant"})

	send, err := binder.SendUserMessage(context.Background(), "what should I do for a cold?")
	require.NoError(t, err)

	// Make the backing file unwritable so appending the reply cannot persist.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0755))
	close(client.gate)

	reply := awaitReply(t, send)
	assert.Equal(t, "Drink plenty of fluids.", reply.Body)

	// The in-flight slot is released after the failed persist; the next send
	// fails on storage, not on mutual exclusion.
	_, err = binder.SendUserMessage(context.Background(), "thanks")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSendInFlight)
}

func TestSendUserMessageImplicitlyBinds(t *testing.T) {
	client := &stubClient{reply: "ok"}
	binder, _ := newTestBinder(t, client)
	assert.Empty(t, binder.ActiveID())

	send, err := binder.SendUserMessage(context.Background(), "hello")
	require.NoError(t, err)
	awaitReply(t, send)

	assert.Equal(t, send.ConversationID, binder.ActiveID())
	assert.NotNil(t, binder.SessionHandle())
}

func TestSendUserMessageRejectsOverlappingSend(t *testing.T) {
	client := &stubClient{reply: "ok", gate: make(chan struct{})}
	binder, _ := newTestBinder(t, client)

	send, err := binder.SendUserMessage(context.Background(), "first")
	require.NoError(t, err)

	_, err = binder.SendUserMessage(context.Background(), "second")
	assert.ErrorIs(t, err, ErrSendInFlight)

	close(client.gate)
	awaitReply(t, send)

	// After completion the binder accepts sends again.
	send, err = binder.SendUserMessage(context.Background(), "third")
	require.NoError(t, err)
	awaitReply(t, send)
	assert.Equal(t, 2, client.calls)
}

func TestBindToExistingIsIdempotentOnActiveConversation(t *testing.T) {
	client := &stubClient{reply: "ok"}
	binder, store := newTestBinder(t, client)

	id, err := binder.BindToNew("")
	require.NoError(t, err)
	require.NoError(t, store.AppendMessage(id, transcript.OperatorSender, "hello"))
	handle := binder.SessionHandle()

	replayed, err := binder.BindToExisting(id)
	require.NoError(t, err)
	assert.Nil(t, replayed)
	assert.Equal(t, handle.ID(), binder.SessionHandle().ID())
}

func TestBindToExistingReplaysStoredMessages(t *testing.T) {
	client := &stubClient{reply: "ok"}
	binder, store := newTestBinder(t, client)

	id, err := binder.BindToNew("")
	require.NoError(t, err)
	require.NoError(t, store.AppendMessage(id, transcript.OperatorSender, "hello"))
	require.NoError(t, store.AppendMessage(id, "Assistant", "hi"))

	other, err := binder.BindToNew("")
	require.NoError(t, err)
	require.NotEqual(t, id, other)

	replayed, err := binder.BindToExisting(id)
	require.NoError(t, err)
	require.Len(t, replayed, 2)
	assert.Equal(t, "hello", replayed[0].Body)
	assert.Equal(t, "hi", replayed[1].Body)
	assert.Equal(t, id, binder.ActiveID())

	// Replaying must not have grown the stored transcript.
	assert.Len(t, store.GetConversation(id).Messages, 2)
}

func TestBindToExistingUnknownIDKeepsPreviousBinding(t *testing.T) {
	client := &stubClient{reply: "ok"}
	binder, _ := newTestBinder(t, client)

	id, err := binder.BindToNew("")
	require.NoError(t, err)
	handle := binder.SessionHandle()

	_, err = binder.BindToExisting("chat_99_20200101000000")
	assert.ErrorIs(t, err, ErrConversationNotFound)
	assert.Equal(t, id, binder.ActiveID())
	assert.Equal(t, handle.ID(), binder.SessionHandle().ID())
}

func TestDeleteActiveUnbinds(t *testing.T) {
	client := &stubClient{reply: "ok"}
	binder, store := newTestBinder(t, client)

	id, err := binder.BindToNew("")
	require.NoError(t, err)
	require.NoError(t, binder.DeleteActive())

	assert.Empty(t, binder.ActiveID())
	assert.Nil(t, binder.SessionHandle())
	assert.Nil(t, store.GetConversation(id))

	// Deleting while unbound is a no-op.
	require.NoError(t, binder.DeleteActive())
}

func TestRenameActiveConversation(t *testing.T) {
	client := &stubClient{reply: "ok"}
	binder, store := newTestBinder(t, client)

	// Renaming while unbound is a no-op.
	require.NoError(t, binder.Rename("ignored"))

	id, err := binder.BindToNew("")
	require.NoError(t, err)
	require.NoError(t, binder.Rename("Blood pressure questions"))
	assert.Equal(t, "Blood pressure questions", store.GetConversation(id).Title)
}

func TestUnbindDropsSessionHandle(t *testing.T) {
	client := &stubClient{reply: "ok"}
	binder, _ := newTestBinder(t, client)

	_, err := binder.BindToNew("")
	require.NoError(t, err)
	binder.Unbind()
	assert.Empty(t, binder.ActiveID())
	assert.Nil(t, binder.SessionHandle())
}
