// Package admin implements account and database administration commands.
package admin

import (
	"github.com/spf13/cobra"

	"github.com/Shabari-K-S/Medicare/internal/auth"
	"github.com/Shabari-K-S/Medicare/internal/cli"
	"github.com/Shabari-K-S/Medicare/internal/configuration"
	"github.com/Shabari-K-S/Medicare/internal/hospital"
)

// NewLoginCmd instantiates and returns the login command.
func NewLoginCmd(store *hospital.Store, config *configuration.Config) *cobra.Command {
	var opts struct {
		Email string
	}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		Long:  "Log in and persist the session",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			service := auth.NewService(store)
			cobra.CheckErr(service.EnsureAdmin())

			email := opts.Email
			if email == "" {
				cli.Notice("Email:\n")
				var err error
				email, err = cli.PromptUser()
				cobra.CheckErr(err)
			}
			password, err := cli.PromptSecret("Password:")
			cobra.CheckErr(err)

			user, err := service.Authenticate(email, password)
			cobra.CheckErr(err)
			cobra.CheckErr(auth.WriteSession(config.Hospital.SessionFile, user))
			cli.Command("logged in as %s (%s)\n", user.Name, user.Role)
		},
	}

	cmd.Flags().StringVarP(&opts.Email, "email", "e", "", "email to log in with")
	return cmd
}

// NewLogoutCmd instantiates and returns the logout command.
func NewLogoutCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Long:  "Clear the persisted session",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			cobra.CheckErr(auth.ClearSession(config.Hospital.SessionFile))
			cli.Command("logged out\n")
		},
	}
}

// NewWhoamiCmd instantiates and returns the whoami command.
func NewWhoamiCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Long:  "Show the logged-in user",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			session, err := auth.ReadSession(config.Hospital.SessionFile)
			cobra.CheckErr(err)
			if session == nil {
				cli.Notice("not logged in\n")
				return
			}
			cli.Command("%s <%s> (%s)\n", session.Name, session.Email, session.Role)
		},
	}
}
