package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Shabari-K-S/Medicare/admin"
	"github.com/Shabari-K-S/Medicare/chat"
	"github.com/Shabari-K-S/Medicare/internal/configuration"
	"github.com/Shabari-K-S/Medicare/internal/hospital"
	"github.com/Shabari-K-S/Medicare/internal/llm"
	"github.com/Shabari-K-S/Medicare/webserver"
)

const configFilepath = "~/.config/medicare/config.json"

var rootCmd = &cobra.Command{
	Use:     "medicare",
	Short:   "Hospital management and check-up assistant CLI",
	Version: "1.0",
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	store, err := hospital.New(config.Hospital.Database)
	if err != nil {
		panic(err)
	}
	defer store.Close()

	client := llm.NewOpenAIClient(config.OpenaiAPIKey, config.OpenaiAPIHost)

	rootCmd.AddCommand(chat.NewCmd(client, config))
	rootCmd.AddCommand(webserver.NewServeCmd(config))
	rootCmd.AddCommand(admin.NewLoginCmd(store, config))
	rootCmd.AddCommand(admin.NewLogoutCmd(config))
	rootCmd.AddCommand(admin.NewWhoamiCmd(config))
	rootCmd.AddCommand(admin.NewRegisterCmd(store))
	rootCmd.AddCommand(admin.NewSeedCmd(store))
	rootCmd.Execute()
}
