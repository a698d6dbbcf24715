// Package webserver serves a read-only web view over conversations and the
// hospital dashboard.
package webserver

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Shabari-K-S/Medicare/internal/configuration"
	"github.com/Shabari-K-S/Medicare/internal/hospital"
	"github.com/Shabari-K-S/Medicare/internal/transcript"
)

//go:embed templates
var templatesFS embed.FS

// PageData is the payload handed to every template.
type PageData struct {
	Title         string
	Conversation  *ConversationViewModel
	Conversations []*ConversationViewModel
	Stats         *hospital.Stats
	Activity      []*hospital.Activity
	Departments   []*hospital.DepartmentMetric
	Appointments  []*hospital.Appointment
}

// ConversationViewModel decorates a conversation for rendering.
type ConversationViewModel struct {
	*transcript.Conversation
	FormattedTime string
}

// NewServeCmd instantiates and returns the serve command.
func NewServeCmd(config *configuration.Config) *cobra.Command {
	var opts struct {
		Port int
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a web interface over conversations and the dashboard",
		Long:  "Serve a web interface over conversations and the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := transcript.New(config.Chat.File)
			if err != nil {
				return errors.Wrap(err, "opening transcript store")
			}
			hospitalStore, err := hospital.New(config.Hospital.Database)
			if err != nil {
				return errors.Wrap(err, "opening hospital store")
			}
			defer hospitalStore.Close()

			server := &Server{
				store:    store,
				registry: transcript.NewRegistry(store),
				hospital: hospitalStore,
			}
			return server.Start(opts.Port)
		},
	}

	cmd.Flags().IntVarP(&opts.Port, "port", "p", 3030, "Port to serve on")
	return cmd
}

// Server renders the web views.
type Server struct {
	store    *transcript.Store
	registry *transcript.Registry
	hospital *hospital.Store
	tmpl     *template.Template
}

// Start parses the templates and blocks serving HTTP.
func (s *Server) Start(port int) error {
	funcMap := sprig.HtmlFuncMap()
	funcMap["formatMessage"] = formatMessage
	funcMap["isOperator"] = isOperator

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS,
		"templates/*.tmpl",
		"templates/pages/*.tmpl",
	)
	if err != nil {
		return errors.Wrap(err, "parsing templates")
	}
	s.tmpl = tmpl

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleInbox)
	mux.HandleFunc("/chat/", s.handleChatRoutes)
	mux.HandleFunc("/dashboard", s.handleDashboard)

	addr := fmt.Sprintf(":%d", port)
	log.Info().Str("addr", addr).Msg("web server starting")
	return http.ListenAndServe(addr, logRequests(mux))
}

func (s *Server) handleChatRoutes(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 3 || parts[2] == "" {
		http.NotFound(w, r)
		return
	}
	id := parts[2]

	switch r.Method {
	case http.MethodGet:
		s.handleChat(w, r, id)
	case http.MethodDelete:
		s.handleDeleteChat(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// logRequests emits one structured line per request.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
