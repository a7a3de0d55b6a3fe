package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"findcourse/internal/cli/auth"
	"findcourse/internal/cli/bootstrap"
	"findcourse/internal/cli/service"
	"findcourse/internal/cli/store"
	"findcourse/internal/config"
)

type centerEditCmd struct{}

func (centerEditCmd) Name() string        { return "center-edit" }
func (centerEditCmd) Description() string { return "Update an own center, only changed fields are sent" }
func (centerEditCmd) Usage() string {
	return "center-edit <id> [--name <name>] [--address <addr>] [--phone <phone>] [--image <stored-name>]"
}

func (centerEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}
	fs := flag.NewFlagSet("center-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "center name")
	address := fs.String("address", "", "street address")
	phone := fs.String("phone", "", "contact phone")
	image := fs.String("image", "", "stored image name from upload")
	if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	client, sess := bootstrap.Open(cfg)
	if !sess.Authenticated() {
		return auth.ErrLoginRequired
	}
	if !sess.IsCEO() {
		return errors.New("only a CEO account can manage centers")
	}
	// edits diff against the current server state
	snapshot, err := service.NewCatalogService(client).LoadCenter(ctx, id)
	if err != nil {
		return err
	}
	err = service.NewMutator(client).EditCenter(ctx, snapshot, service.CenterEdit{
		Name:    *name,
		Address: *address,
		Phone:   *phone,
		Image:   *image,
	})
	if err == service.ErrNoChanges {
		fmt.Fprintln(Out, "Nothing to update")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Center #%d updated\n", id)
	return nil
}

func init() { RegisterCmd(centerEditCmd{}) }

type centerDelCmd struct{}

func (centerDelCmd) Name() string        { return "center-del" }
func (centerDelCmd) Description() string { return "Delete an own center" }
func (centerDelCmd) Usage() string       { return "center-del <id> [--yes]" }

func (centerDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("center-del", flag.ContinueOnError)
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
	if !sess.IsCEO() {
		return errors.New("only a CEO account can manage centers")
	}
	if !*yes && !confirm(fmt.Sprintf("Delete center #%d?", id)) {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	if err := service.NewMutator(client).DeleteCenter(ctx, &store.Catalog{}, id); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Center #%d deleted\n", id)
	return nil
}

func init() { RegisterCmd(centerDelCmd{}) }
