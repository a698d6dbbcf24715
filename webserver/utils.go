package webserver

import (
	"html/template"
	"strings"

	"github.com/Shabari-K-S/Medicare/internal/transcript"
)

// formatMessage makes the text HTML-safe while preserving line breaks.
func formatMessage(content string) template.HTML {
	escaped := template.HTMLEscapeString(content)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return template.HTML(escaped)
}

// isOperator reports whether a message was written by the operator.
func isOperator(message *transcript.Message) bool {
	return message.Sender == transcript.OperatorSender
}
