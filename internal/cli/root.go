// Package cli implements flavorctl, the operator tool for the data the
// admin UI cannot edit: categories, admin accounts and bulk menu seeding.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/flavor-house/internal/config"
	"github.com/iliyamo/flavor-house/internal/database"
	"github.com/iliyamo/flavor-house/internal/docstore"
)

// Opener returns the store commands operate on and a func releasing it.
type Opener func(ctx context.Context, driver, dsn string) (docstore.Store, func(), error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Driver string
	DSN    string

	open  Opener
	store docstore.Store
	close func()
}

// Store is the store opened for the running command.
func (o *RootOptions) Store() docstore.Store { return o.store }

// OpenDatabase is the Opener used by the binary.
func OpenDatabase(ctx context.Context, driver, dsn string) (docstore.Store, func(), error) {
	s, db, err := database.OpenStore(ctx, driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	return s, func() {
		if db != nil {
			_ = db.Close()
		}
	}, nil
}

// NewRootCommand creates the flavorctl root command. Database flags default
// to DB_DRIVER and DB_DSN (or the DB_* parts for mysql).
func NewRootCommand(open Opener) *cobra.Command {
	driver, dsn := config.StoreFromEnv()
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:           "flavorctl",
		Short:         "Flavor House operator tool",
		Long:          "Manage categories and admin accounts, and seed the menu from a YAML file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := opts.open(cmd.Context(), opts.Driver, opts.DSN)
			if err != nil {
				return fmt.Errorf("open %s store: %w", opts.Driver, err)
			}
			opts.store, opts.close = s, closeFn
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.close != nil {
				opts.close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", driver, "database driver (mysql|postgres|sqlite|memory)")
	cmd.PersistentFlags().StringVar(&opts.DSN, "dsn", dsn, "database DSN")

	cmd.AddCommand(NewCategoriesCommand(opts))
	cmd.AddCommand(NewAdminCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
