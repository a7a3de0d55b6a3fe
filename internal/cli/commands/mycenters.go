package commands

import (
	"context"
	"fmt"

	"findcourse/internal/cli/auth"
	"findcourse/internal/cli/bootstrap"
	"findcourse/internal/cli/service"
	"findcourse/internal/config"
)

type mycentersCmd struct{}

func (mycentersCmd) Name() string        { return "mycenters" }
func (mycentersCmd) Description() string { return "List centers owned by the session user" }
func (mycentersCmd) Usage() string       { return "mycenters" }

func (mycentersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	client, sess := bootstrap.Open(cfg)
	if !sess.Authenticated() {
		return auth.ErrLoginRequired
	}
	list, err := service.NewCatalogService(client).LoadMyCenters(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No centers yet")
		return nil
	}
	for _, c := range list {
		fmt.Fprintf(Out, "- #%d  %s  %s\n", c.ID, c.Name, c.Address)
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

func init() { RegisterCmd(mycentersCmd{}) }
