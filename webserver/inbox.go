package webserver

import (
	"net/http"

	"github.com/Shabari-K-S/Medicare/internal/transcript"
)

func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	summaries := s.registry.SortedSummaries()
	views := make([]*ConversationViewModel, 0, len(summaries))
	for _, summary := range summaries {
		if summary.ID == transcript.PlaceholderID {
			continue
		}
		conversation := s.store.GetConversation(summary.ID)
		if conversation == nil {
			continue
		}
		views = append(views, &ConversationViewModel{
			Conversation:  conversation,
			FormattedTime: conversation.UpdatedAt.Format("Jan 2, 2006 3:04 PM"),
		})
	}

	data := &PageData{
		Title:         "Conversations",
		Conversations: views,
	}
	if err := s.tmpl.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}
