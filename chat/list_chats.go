package chat

import (
	"github.com/spf13/cobra"

	"github.com/Shabari-K-S/Medicare/internal/cli"
	"github.com/Shabari-K-S/Medicare/internal/configuration"
	"github.com/Shabari-K-S/Medicare/internal/transcript"
)

// newListCmd instantiates and returns the chat list command.
func newListCmd(config *configuration.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all conversations",
		Long:  "List all conversations",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			store, err := transcript.New(config.Chat.File)
			cobra.CheckErr(err)
			registry := transcript.NewRegistry(store)

			cli.Title("MEDICARE CHAT LIST")

			summaries := registry.SortedSummaries()
			if summaries[0].ID == transcript.PlaceholderID {
				cli.Notice("no conversations yet\n")
				return
			}
			for _, summary := range summaries {
				conversation := store.GetConversation(summary.ID)
				cli.AssistantOutput("%s (%s) - updated %s\n",
					summary.Title, summary.ID,
					conversation.UpdatedAt.Format("2006-01-02 15:04:05"))
				for i, message := range conversation.Messages {
					if i >= 4 {
						break
					}
					if message.Sender == transcript.OperatorSender {
						cli.OperatorInput("> %s\n", message.Body)
					}
				}
			}
		},
	}
	return cmd
}
