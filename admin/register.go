package admin

import (
	"github.com/spf13/cobra"

	"github.com/Shabari-K-S/Medicare/internal/auth"
	"github.com/Shabari-K-S/Medicare/internal/cli"
	"github.com/Shabari-K-S/Medicare/internal/hospital"
)

// NewRegisterCmd instantiates and returns the register command.
func NewRegisterCmd(store *hospital.Store) *cobra.Command {
	var opts struct {
		Name           string
		Email          string
		Role           string
		Specialization string
	}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new staff account",
		Long:  "Register a new staff account",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			password, err := cli.PromptSecret("Password:")
			cobra.CheckErr(err)
			confirmation, err := cli.PromptSecret("Confirm password:")
			cobra.CheckErr(err)
			if password != confirmation {
				cli.Notice("passwords do not match\n")
				return
			}

			service := auth.NewService(store)
			user := &hospital.User{
				Name:           opts.Name,
				Email:          opts.Email,
				Role:           opts.Role,
				Specialization: opts.Specialization,
			}
			cobra.CheckErr(service.Register(user, password))
			cli.Command("registered %s (%s)\n", user.Email, user.Role)
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "full name")
	cmd.Flags().StringVarP(&opts.Email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&opts.Role, "role", "r", "doctor", "role (admin, doctor, nurse)")
	cmd.Flags().StringVarP(&opts.Specialization, "specialization", "s", "", "medical specialization")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	return cmd
}
