package webserver

import (
	"net/http"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request, id string) {
	conversation := s.store.GetConversation(id)
	if conversation == nil {
		http.NotFound(w, r)
		return
	}

	data := &PageData{
		Title: conversation.Title,
		Conversation: &ConversationViewModel{
			Conversation:  conversation,
			FormattedTime: conversation.UpdatedAt.Format("Jan 2, 2006 3:04 PM"),
		},
	}
	if err := s.tmpl.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.store.DeleteConversation(id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
