package commands

import (
	"context"
	"fmt"
	"strconv"

	"findcourse/internal/cli/bootstrap"
	"findcourse/internal/cli/service"
	"findcourse/internal/config"
)

type centerCmd struct{}

func (centerCmd) Name() string        { return "center" }
func (centerCmd) Description() string { return "Show one center with comments" }
func (centerCmd) Usage() string       { return "center <id>" }

func (centerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}

	client, sess := bootstrap.Open(cfg)
	c, err := service.NewCatalogService(client).LoadCenter(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(Out, "#%d %s\n", c.ID, c.Name)
	fmt.Fprintf(Out, "  address: %s\n", c.Address)
	fmt.Fprintf(Out, "  phone:   %s\n", c.Phone)
	if c.Region != nil {
		fmt.Fprintf(Out, "  region:  %s\n", c.Region.Name)
	}
	if c.Image != "" {
		fmt.Fprintf(Out, "  image:   %s\n", client.ImageURL(c.Image))
	}
	if c.User != nil {
		fmt.Fprintf(Out, "  owner:   %s %s\n", c.User.FirstName, c.User.LastName)
	}
	if len(c.Majors) > 0 {
		fmt.Fprintln(Out, "  majors:")
		for _, m := range c.Majors {
			fmt.Fprintf(Out, "    - #%d %s\n", m.ID, m.Name)
		}
	}
	if len(c.Filials) > 0 {
		fmt.Fprintln(Out, "  filials:")
		for _, f := range c.Filials {
			fmt.Fprintf(Out, "    - #%d %s  %s\n", f.ID, f.Name, f.Address)
		}
	}

	comments := service.CommentsNewestFirst(c.Comments)
	if len(comments) == 0 {
		fmt.Fprintln(Out, "No comments yet")
		return nil
	}
	fmt.Fprintf(Out, "Comments (%d):\n", len(comments))
	for _, cm := range comments {
		author := "anonymous"
		if cm.User != nil {
			author = cm.User.FullName()
		}
		// edit and delete hints only on the session user's own comments
		own := ""
		if sess.Authenticated() && cm.UserID == sess.UserID() {
			own = "  (yours: comment-edit/comment-del)"
		}
		fmt.Fprintf(Out, "  #%d %s %s: %s%s\n", cm.ID, stars(cm.Star), author, cm.Text, own)
	}
	return nil
}

func init() { RegisterCmd(centerCmd{}) }
