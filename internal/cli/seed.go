package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iliyamo/flavor-house/internal/docstore"
	"github.com/iliyamo/flavor-house/internal/model"
	"github.com/iliyamo/flavor-house/internal/repository"
)

// SeedFile is the menu seed format:
//
//	categories:
//	  - name: Mains
//	dishes:
//	  - name: Pho Bo
//	    price: 65.000
//	    categories: [Mains]
//	    image: https://...
//
// Dish categories refer to categories by name.
type SeedFile struct {
	Categories []model.CategoryFields `yaml:"categories"`
	Dishes     []SeedDish             `yaml:"dishes"`
}

type SeedDish struct {
	Name       string    `yaml:"name"`
	Price      SeedPrice `yaml:"price"`
	Categories []string  `yaml:"categories"`
	Image      string    `yaml:"image"`
}

// SeedPrice accepts a plain number or a localized amount such as "65.000 ₫".
type SeedPrice int64

func (p *SeedPrice) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: price must be a scalar", n.Line)
	}
	v, err := model.ParsePrice(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*p = SeedPrice(v)
	return nil
}

// ParseSeed decodes a seed file, rejecting unknown fields.
func ParseSeed(r io.Reader) (*SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	for i, c := range f.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("category %d: name is required", i+1)
		}
	}
	for i, d := range f.Dishes {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("dish %d: name is required", i+1)
		}
		if len(d.Categories) == 0 {
			return nil, fmt.Errorf("dish %q: at least one category is required", d.Name)
		}
	}
	return &f, nil
}

// SeedResult counts what a seed run wrote and skipped.
type SeedResult struct {
	CategoriesAdded, CategoriesSkipped int
	DishesAdded, DishesSkipped         int
}

// Seed writes the file's categories and dishes. Records whose name already
// exists (case-insensitive) are skipped, so running the same file twice
// changes nothing.
func Seed(ctx context.Context, s docstore.Store, f *SeedFile) (SeedResult, error) {
	var res SeedResult
	cats := repository.NewCategoryRepo(s)
	dishes := repository.NewDishRepo(s)

	existing, err := cats.FetchAll(ctx)
	if err != nil {
		return res, err
	}
	ids := make(map[string]string, len(existing))
	for _, c := range existing {
		ids[strings.ToLower(c.Name)] = c.ID
	}
	for _, c := range f.Categories {
		name := strings.TrimSpace(c.Name)
		if _, ok := ids[strings.ToLower(name)]; ok {
			res.CategoriesSkipped++
			continue
		}
		created, err := cats.Create(ctx, model.CategoryFields{Name: name})
		if err != nil {
			return res, err
		}
		ids[strings.ToLower(name)] = created.ID
		res.CategoriesAdded++
	}

	current, err := dishes.FetchAll(ctx)
	if err != nil {
		return res, err
	}
	names := make(map[string]bool, len(current))
	for _, d := range current {
		names[strings.ToLower(d.Name)] = true
	}
	for _, d := range f.Dishes {
		name := strings.TrimSpace(d.Name)
		if names[strings.ToLower(name)] {
			res.DishesSkipped++
			continue
		}
		catIDs := make([]string, 0, len(d.Categories))
		for _, cn := range d.Categories {
			id, ok := ids[strings.ToLower(strings.TrimSpace(cn))]
			if !ok {
				return res, fmt.Errorf("dish %q: unknown category %q", name, cn)
			}
			catIDs = append(catIDs, id)
		}
		if _, err := dishes.Create(ctx, model.DishFields{
			Name:       name,
			Price:      int64(d.Price),
			Categories: catIDs,
			Image:      strings.TrimSpace(d.Image),
		}); err != nil {
			return res, err
		}
		names[strings.ToLower(name)] = true
		res.DishesAdded++
	}
	return res, nil
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load categories and dishes from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read seed file: %w", err)
			}
			f, err := ParseSeed(bytes.NewReader(data))
			if err != nil {
				return err
			}
			res, err := Seed(cmd.Context(), opts.Store(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "categories: %d added, %d skipped\ndishes: %d added, %d skipped\n",
				res.CategoriesAdded, res.CategoriesSkipped, res.DishesAdded, res.DishesSkipped)
			return nil
		},
	}
}
