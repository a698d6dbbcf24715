package admin

import (
	"github.com/spf13/cobra"

	"github.com/Shabari-K-S/Medicare/internal/auth"
	"github.com/Shabari-K-S/Medicare/internal/cli"
	"github.com/Shabari-K-S/Medicare/internal/hospital"
)

// NewSeedCmd instantiates and returns the seed command.
func NewSeedCmd(store *hospital.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with sample data",
		Long:  "Populate the database with sample data",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			cobra.CheckErr(auth.NewService(store).EnsureAdmin())
			cobra.CheckErr(store.Seed(auth.HashPassword))
			cli.Command("database seeded\n")
		},
	}
}
