package chat

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Shabari-K-S/Medicare/internal/cli"
	"github.com/Shabari-K-S/Medicare/internal/configuration"
	"github.com/Shabari-K-S/Medicare/internal/llm"
	"github.com/Shabari-K-S/Medicare/internal/session"
	"github.com/Shabari-K-S/Medicare/internal/transcript"
)

// welcomeMessage greets the operator on every binding. It is display-only
// and never written to the transcript.
const welcomeMessage = "Hello! I am your medical check-up assistant. How can I help you today?"

// NewCmd instantiates and returns the chat command.
func NewCmd(client llm.Client, config *configuration.Config) *cobra.Command {
	var opts struct {
		ConversationID string
		Model          string
	}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the check-up assistant",
		Long:  "Chat with the check-up assistant",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			store, err := transcript.New(config.Chat.File)
			cobra.CheckErr(err)
			registry := transcript.NewRegistry(store)

			model := config.Chat.DefaultModel
			if opts.Model != "" {
				model = opts.Model
			}
			binder := session.NewBinder(store, client, session.Options{
				Model:          model,
				AssistantName:  config.Chat.AssistantName,
				RequestTimeout: time.Duration(config.RequestTimeout) * time.Second,
			})

			cli.Title("MEDICARE ASSISTANT [%s]", model)

			// Bind to the requested conversation, or offer a picker.
			if opts.ConversationID != "" {
				replayed, err := binder.BindToExisting(opts.ConversationID)
				cobra.CheckErr(err)
				printMessages(config, replayed)
			} else {
				cobra.CheckErr(pickConversation(binder, registry, config))
			}
			cli.AssistantOutput("%s: %s\n", config.Chat.AssistantName, welcomeMessage)

			ctx := context.Background()
			for {
				text, err := cli.PromptUser()
				if err == readline.ErrInterrupt || err == io.EOF {
					return
				}
				cobra.CheckErr(err)
				text = strings.TrimSpace(text)
				if text == "" {
					continue
				}
				if strings.HasPrefix(text, "/") {
					quit, err := runCommand(binder, registry, config, text)
					cobra.CheckErr(err)
					if quit {
						return
					}
					continue
				}

				// Quick feedback so the operator knows the message is on its way.
				cli.AssistantOutput("%s: ", config.Chat.AssistantName)
				send, err := binder.SendUserMessage(ctx, text)
				if errors.Is(err, session.ErrSendInFlight) {
					cli.Notice("still waiting on the previous reply\n")
					continue
				}
				cobra.CheckErr(err)
				reply := <-send.Done
				cli.AssistantOutput("%s\n", reply.Body)
			}
		},
	}

	cmd.Flags().StringVar(&opts.ConversationID, "id", "", "bind to a specific conversation")
	cmd.Flags().StringVarP(&opts.Model, "model", "m", "", "override the configured model")

	cmd.AddCommand(newListCmd(config))
	return cmd
}

// pickConversation offers the sorted conversation list, with a "new chat"
// entry first. An empty store skips straight to a new conversation.
func pickConversation(binder *session.Binder, registry *transcript.Registry, config *configuration.Config) error {
	summaries := registry.SortedSummaries()
	if summaries[0].ID == transcript.PlaceholderID {
		_, err := binder.BindToNew("")
		return err
	}

	options := make([]string, 0, len(summaries)+1)
	options = append(options, "New Chat")
	for _, summary := range summaries {
		options = append(options, summary.Title)
	}
	index, err := cli.SelectOption("Pick a conversation", options)
	if err != nil {
		return err
	}
	if index == 0 {
		_, err := binder.BindToNew("")
		return err
	}

	replayed, err := binder.BindToExisting(summaries[index-1].ID)
	if err != nil {
		return err
	}
	printMessages(config, replayed)
	return nil
}

// runCommand handles in-chat slash commands. Returns true to quit the loop.
func runCommand(binder *session.Binder, registry *transcript.Registry, config *configuration.Config, text string) (bool, error) {
	switch text {
	case "/new":
		if _, err := binder.BindToNew(""); err != nil {
			return false, err
		}
		cli.Command("started a new conversation\n")
		cli.AssistantOutput("%s: %s\n", config.Chat.AssistantName, welcomeMessage)

	case "/switch":
		if err := pickConversation(binder, registry, config); err != nil {
			return false, err
		}
		cli.AssistantOutput("%s: %s\n", config.Chat.AssistantName, welcomeMessage)

	case "/delete":
		if !cli.QueryUser("Delete the current conversation?") {
			return false, nil
		}
		if err := binder.DeleteActive(); err != nil {
			return false, err
		}
		if _, err := binder.BindToNew(""); err != nil {
			return false, err
		}
		cli.Command("conversation deleted\n")
		cli.AssistantOutput("%s: %s\n", config.Chat.AssistantName, welcomeMessage)

	case "/quit":
		return true, nil

	default:
		if title, ok := strings.CutPrefix(text, "/rename "); ok {
			title = strings.TrimSpace(title)
			if title == "" || binder.ActiveID() == "" {
				return false, nil
			}
			if err := binder.Rename(title); err != nil {
				return false, err
			}
			cli.Command("conversation renamed\n")
			return false, nil
		}
		cli.Notice("commands: /new /switch /rename <title> /delete /quit\n")
	}
	return false, nil
}

func printMessages(config *configuration.Config, messages []*transcript.Message) {
	for _, message := range messages {
		if message.Sender == transcript.OperatorSender {
			cli.OperatorInput("> %s\n", message.Body)
			continue
		}
		cli.AssistantOutput("%s: %s\n", config.Chat.AssistantName, message.Body)
	}
}
