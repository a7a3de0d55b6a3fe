package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"findcourse/internal/cli/auth"
	"findcourse/internal/cli/bootstrap"
	"findcourse/internal/cli/service"
	"findcourse/internal/config"
)

type resourcesCmd struct{}

func (resourcesCmd) Name() string        { return "resources" }
func (resourcesCmd) Description() string { return "List study resources, filtered locally" }
func (resourcesCmd) Usage() string       { return "resources [--category <id>] [--search <term>]" }

func (resourcesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("resources", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	category := fs.Int64("category", 0, "category id")
	search := fs.String("search", "", "substring match on name and description")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	client, _ := bootstrap.Open(cfg)
	categories, err := service.NewCatalogService(client).LoadCategories(ctx)
	if err != nil {
		return err
	}
	list := service.FilterResources(categories, service.ResourceFilter{
		CategoryID: *category,
		Term:       *search,
	})
	if len(list) == 0 {
		fmt.Fprintln(Out, "No resources matched")
		return nil
	}
	for _, r := range list {
		fmt.Fprintf(Out, "- #%d  %s  %s\n", r.ID, r.Name, r.Media)
		if r.Description != "" {
			fmt.Fprintf(Out, "    %s\n", r.Description)
		}
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

func init() { RegisterCmd(resourcesCmd{}) }

type resourceAddCmd struct{}

func (resourceAddCmd) Name() string        { return "resource-add" }
func (resourceAddCmd) Description() string { return "Share a study resource" }
func (resourceAddCmd) Usage() string {
	return "resource-add --category <id> --name <name> --media <link> [--description <text>] [--image <stored-name>]"
}

func (resourceAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("resource-add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	category := fs.Int64("category", 0, "category id")
	name := fs.String("name", "", "resource name")
	media := fs.String("media", "", "link to the material")
	description := fs.String("description", "", "short description")
	image := fs.String("image", "", "stored image name from upload")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	client, sess := bootstrap.Open(cfg)
	if !sess.Authenticated() {
		return auth.ErrLoginRequired
	}
	res, err := service.NewMutator(client).AddResource(ctx, service.ResourceInput{
		Name:        *name,
		Description: *description,
		Media:       *media,
		Image:       *image,
		CategoryID:  *category,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Resource #%d created\n", res.ID)
	return nil
}

func init() { RegisterCmd(resourceAddCmd{}) }

type resourceDelCmd struct{}

func (resourceDelCmd) Name() string        { return "resource-del" }
func (resourceDelCmd) Description() string { return "Delete an own resource" }
func (resourceDelCmd) Usage() string       { return "resource-del <id> [--yes]" }

func (resourceDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("resource-del", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return ErrUsage
	}

	client, sess := bootstrap.Open(cfg)
	if !sess.Authenticated() {
		return auth.ErrLoginRequired
	}
	if !*yes && !confirm(fmt.Sprintf("Delete resource #%d?", id)) {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	if err := service.NewMutator(client).DeleteResource(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Resource #%d deleted\n", id)
	return nil
}

func init() { RegisterCmd(resourceDelCmd{}) }
