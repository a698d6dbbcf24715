package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/buger/goterm"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	// Colors for different types of output
	operatorColor  = color.New(color.FgWhite)                // White for operator input
	commandColor   = color.New(color.FgGreen)                // Green for commands
	assistantColor = color.New(color.FgCyan)                 // Cyan for assistant replies
	titleColor     = color.New(color.FgMagenta, color.Bold)  // Bold magenta for titles
	separatorColor = color.New(color.FgHiBlack)              // Dark grey for separators
	noticeColor    = color.New(color.FgYellow)               // Yellow for notices
	promptColor    = color.New(color.FgHiBlue)               // Bright blue for prompts

	width = goterm.Width()
)

// Separator printed to cli.
func Separator() {
	separator := strings.Repeat("-", width)
	separatorColor.Println(separator)
}

// Title printed to cli.
func Title(text string, args ...any) {
	title := "      " + fmt.Sprintf(text, args...) + "      "
	leftWidth := (width - len(title)) / 2
	if leftWidth < 0 {
		leftWidth = 0
	}
	separator1 := strings.Repeat("-", leftWidth)
	separator2 := strings.Repeat("-", max(width-len(title)-len(separator1), 0))
	output := fmt.Sprintf("%s%s%s", separator1, title, separator2)
	titleColor.Println(output)
}

// OperatorInput printed to cli.
func OperatorInput(text string, args ...any) {
	operatorColor.Printf(text, args...)
}

// Command printed to cli.
func Command(text string, args ...any) {
	if len(args) == 0 {
		commandColor.Print(text)
		return
	}
	commandColor.Printf(text, args...)
}

// AssistantOutput printed to cli. Arguments are formatted first so reply
// bodies containing `%` are printed verbatim.
func AssistantOutput(text string, args ...any) {
	if len(args) == 0 {
		assistantColor.Print(text)
		return
	}
	assistantColor.Print(fmt.Sprintf(text, args...))
}

// Notice printed to cli.
func Notice(text string, args ...any) {
	noticeColor.Printf(text, args...)
}

// PromptUser for input.
func PromptUser() (string, error) {
	config := &readline.Config{
		Prompt:            promptColor.Sprint("> "),
		InterruptPrompt:   "^C",
		HistoryFile:       "/tmp/medicare.history",
		HistorySearchFold: true,
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return "", err
	}
	defer rl.Close()
	return rl.Readline()
}

// PromptSecret queries the user for a password.
func PromptSecret(message string) (string, error) {
	var secret string
	prompt := &survey.Password{Message: message}
	if err := survey.AskOne(prompt, &secret); err != nil {
		return "", err
	}
	return secret, nil
}

// SelectOption asks the user to pick one of the given options.
func SelectOption(message string, options []string) (int, error) {
	var index int
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &index); err != nil {
		return 0, err
	}
	return index, nil
}

// QueryUser a yes/no question.
func QueryUser(question string) bool {
	surveyQuestion := &survey.Confirm{
		Message: question,
	}
	confirm := false
	survey.AskOne(surveyQuestion, &confirm)
	return confirm
}
