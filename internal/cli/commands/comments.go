package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"findcourse/internal/cli/auth"
	"findcourse/internal/cli/bootstrap"
	"findcourse/internal/cli/service"
	"findcourse/internal/cli/store"
	"findcourse/internal/config"
)

type commentAddCmd struct{}

func (commentAddCmd) Name() string        { return "comment-add" }
func (commentAddCmd) Description() string { return "Leave a comment on a center" }
func (commentAddCmd) Usage() string       { return "comment-add --center <id> [--star 1..5] <text>" }

func (commentAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("comment-add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	center := fs.Int64("center", 0, "center id")
	star := fs.Int("star", 5, "rating 1..5")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 || *center == 0 {
		return ErrUsage
	}
	text := strings.Join(fs.Args(), " ")

	client, sess := bootstrap.Open(cfg)
	if !sess.Authenticated() {
		return auth.ErrLoginRequired
	}
	cm, err := service.NewMutator(client).AddComment(ctx, &store.Comments{}, *center, text, *star)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Comment #%d added %s\n", cm.ID, stars(cm.Star))
	return nil
}

func init() { RegisterCmd(commentAddCmd{}) }

type commentEditCmd struct{}

func (commentEditCmd) Name() string        { return "comment-edit" }
func (commentEditCmd) Description() string { return "Edit an own comment" }
func (commentEditCmd) Usage() string       { return "comment-edit <id> <text>" }

func (commentEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}
	text := strings.Join(args[1:], " ")

	client, sess := bootstrap.Open(cfg)
	if !sess.Authenticated() {
		return auth.ErrLoginRequired
	}
	if err := service.NewMutator(client).EditComment(ctx, &store.Comments{}, id, text); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Comment #%d updated\n", id)
	return nil
}

func init() { RegisterCmd(commentEditCmd{}) }

type commentDelCmd struct{}

func (commentDelCmd) Name() string        { return "comment-del" }
func (commentDelCmd) Description() string { return "Delete an own comment" }
func (commentDelCmd) Usage() string       { return "comment-del <id> [--yes]" }

func (commentDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("comment-del", flag.ContinueOnError)
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
	if !*yes && !confirm(fmt.Sprintf("Delete comment #%d?", id)) {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	if err := service.NewMutator(client).DeleteComment(ctx, &store.Comments{}, id); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Comment #%d deleted\n", id)
	return nil
}

func init() { RegisterCmd(commentDelCmd{}) }
