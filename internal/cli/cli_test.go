package cli

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// captureOutput redirects color output into a buffer for the test's duration.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buffer := &bytes.Buffer{}
	previousOutput := color.Output
	previousNoColor := color.NoColor
	color.Output = buffer
	color.NoColor = true
	t.Cleanup(func() {
		color.Output = previousOutput
		color.NoColor = previousNoColor
	})
	return buffer
}

func TestAssistantOutputFormatsArguments(t *testing.T) {
	buffer := captureOutput(t)

	AssistantOutput("%s: %s\n", "Assistant", "Hello! How can I help you today?")
	assert.Equal(t, "Assistant: Hello! How can I help you today?\n", buffer.String())
}

func TestAssistantOutputKeepsPercentSignsInArguments(t *testing.T) {
	buffer := captureOutput(t)

	AssistantOutput("%s: %s\n", "Assistant", "Use 50% of the adult dose.")
	assert.Equal(t, "Assistant: Use 50% of the adult dose.\n", buffer.String())
}

func TestAssistantOutputPrintsArgFreeTextVerbatim(t *testing.T) {
	buffer := captureOutput(t)

	AssistantOutput("coverage is 100%\n")
	assert.Equal(t, "coverage is 100%\n", buffer.String())
}

func TestTitleCentersText(t *testing.T) {
	buffer := captureOutput(t)

	Title("MEDICARE ASSISTANT [%s]", "gpt-4o-mini")
	assert.Contains(t, buffer.String(), "MEDICARE ASSISTANT [gpt-4o-mini]")
}
