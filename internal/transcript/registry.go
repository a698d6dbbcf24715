package transcript

import (
	"sort"
)

// PlaceholderID identifies the synthetic "no conversations yet" entry the
// registry returns when the store is empty. It never refers to a stored
// conversation.
const PlaceholderID = "new"

// Summary describes a conversation for listing and selection.
type Summary struct {
	ID    string
	Title string
}

// Registry is a read-side view over the store, recomputed on demand.
type Registry struct {
	store *Store
}

// NewRegistry over the given store.
func NewRegistry(store *Store) *Registry {
	return &Registry{store: store}
}

// SortedSummaries returns all conversations sorted by last-updated timestamp,
// descending. An empty store yields a single placeholder entry.
func (r *Registry) SortedSummaries() []*Summary {
	conversations := r.store.ListConversations()
	if len(conversations) == 0 {
		return []*Summary{{ID: PlaceholderID, Title: "New Chat"}}
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].UpdatedAt.After(conversations[j].UpdatedAt)
	})
	summaries := make([]*Summary, 0, len(conversations))
	for _, conversation := range conversations {
		summaries = append(summaries, &Summary{ID: conversation.ID, Title: conversation.Title})
	}
	return summaries
}

// MostRecent returns the most recently updated conversation, or nil if the
// store is empty.
func (r *Registry) MostRecent() *Conversation {
	summaries := r.SortedSummaries()
	if summaries[0].ID == PlaceholderID {
		return nil
	}
	return r.store.GetConversation(summaries[0].ID)
}
