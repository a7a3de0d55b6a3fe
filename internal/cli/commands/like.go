package commands

import (
	"context"
	"fmt"
	"strconv"

	"findcourse/internal/cli/auth"
	"findcourse/internal/cli/bootstrap"
	"findcourse/internal/cli/service"
	"findcourse/internal/cli/store"
	"findcourse/internal/config"
)

type likeCmd struct{}

func (likeCmd) Name() string        { return "like" }
func (likeCmd) Description() string { return "Toggle a center in favorites" }
func (likeCmd) Usage() string       { return "like <center-id>" }

func (likeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	centerID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}

	client, sess := bootstrap.Open(cfg)
	if !sess.Authenticated() {
		return auth.ErrLoginRequired
	}
	// the delete endpoint wants the like record id, not the center id,
	// so the current likes have to be known before the toggle
	profile, err := sess.Mydata(ctx)
	if err != nil {
		return err
	}
	idx := store.NewLikeIndex(profile.Likes)
	liked, err := service.NewMutator(client).ToggleLike(ctx, idx, centerID)
	if err != nil {
		return err
	}
	if liked {
		fmt.Fprintf(Out, "Center #%d added to favorites\n", centerID)
	} else {
		fmt.Fprintf(Out, "Center #%d removed from favorites\n", centerID)
	}
	return nil
}

func init() { RegisterCmd(likeCmd{}) }

type favoritesCmd struct{}

func (favoritesCmd) Name() string        { return "favorites" }
func (favoritesCmd) Description() string { return "List liked centers" }
func (favoritesCmd) Usage() string       { return "favorites" }

func (favoritesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	client, sess := bootstrap.Open(cfg)
	if !sess.Authenticated() {
		return auth.ErrLoginRequired
	}
	views, _, err := service.NewCatalogService(client).LoadFavorites(ctx, sess)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		fmt.Fprintln(Out, "No favorites yet")
		return nil
	}
	for _, v := range views {
		if v.Center == nil {
			fmt.Fprintf(Out, "- like #%d: center #%d is gone\n", v.Like.ID, v.Like.CenterID)
			continue
		}
		fmt.Fprintf(Out, "- #%d  %s  %s\n", v.Center.ID, v.Center.Name, v.Center.Address)
	}
	fmt.Fprintf(Out, "Total: %d\n", len(views))
	return nil
}

func init() { RegisterCmd(favoritesCmd{}) }
