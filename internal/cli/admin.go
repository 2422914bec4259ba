package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/flavor-house/internal/repository"
)

// NewAdminCommand creates the admin command group. Admin accounts cannot
// be created from the web UI.
func NewAdminCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	var password string
	cost := bcrypt.DefaultCost
	if n, err := strconv.Atoi(os.Getenv("BCRYPT_COST")); err == nil {
		cost = n
	}
	create := &cobra.Command{
		Use:   "create <email>",
		Short: "Create an admin account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := repository.NewAdminRepo(opts.Store()).Create(cmd.Context(), args[0], password, cost)
			if errors.Is(err, repository.ErrEmailExists) {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", args[0], id)
			return nil
		},
	}
	create.Flags().StringVarP(&password, "password", "p", "", "initial password")
	create.Flags().IntVar(&cost, "cost", cost, "bcrypt cost")
	_ = create.MarkFlagRequired("password")

	list := &cobra.Command{
		Use:   "list",
		Short: "List admin accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			admins, err := repository.NewAdminRepo(opts.Store()).List(cmd.Context())
			if err != nil {
				return err
			}
			for _, a := range admins {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", a.ID, a.Email)
			}
			return nil
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}
