package commands

import (
	"context"
	"fmt"

	"findcourse/internal/cli/bootstrap"
	"findcourse/internal/cli/service"
	"findcourse/internal/config"
)

type categoriesCmd struct{}

func (categoriesCmd) Name() string        { return "categories" }
func (categoriesCmd) Description() string { return "List resource categories" }
func (categoriesCmd) Usage() string       { return "categories" }

func (categoriesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	client, _ := bootstrap.Open(cfg)
	list, err := service.NewCatalogService(client).LoadCategories(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No categories")
		return nil
	}
	for _, c := range list {
		fmt.Fprintf(Out, "- #%d  %s  (%d resources)\n", c.ID, c.Name, len(c.Resources))
	}
	return nil
}

func init() { RegisterCmd(categoriesCmd{}) }
