package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iliyamo/flavor-house/internal/model"
	"github.com/iliyamo/flavor-house/internal/repository"
)

// NewCategoriesCommand creates the categories command group.
func NewCategoriesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List, add and delete menu categories",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cats, err := repository.NewCategoryRepo(opts.Store()).FetchAll(cmd.Context())
				if err != nil {
					return err
				}
				for _, c := range cats {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.ID, c.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <name>...",
			Short: "Add one category per argument",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				repo := repository.NewCategoryRepo(opts.Store())
				for _, name := range args {
					name = strings.TrimSpace(name)
					if name == "" {
						return fmt.Errorf("category name cannot be empty")
					}
					c, err := repo.Create(cmd.Context(), model.CategoryFields{Name: name})
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "added %s\t%s\n", c.ID, c.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>...",
			Short: "Delete categories by id",
			Long:  "Delete categories by id. Dishes keep the deleted ids in their category list.",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				repo := repository.NewCategoryRepo(opts.Store())
				for _, id := range args {
					if err := repo.Delete(cmd.Context(), id); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
				}
				return nil
			},
		},
	)
	return cmd
}
