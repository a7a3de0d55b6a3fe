package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"findcourse/internal/cli/auth"
	"findcourse/internal/cli/bootstrap"
	"findcourse/internal/cli/service"
	"findcourse/internal/config"
)

type centersCmd struct{}

func (centersCmd) Name() string        { return "centers" }
func (centersCmd) Description() string { return "List centers, filtered locally" }
func (centersCmd) Usage() string {
	return "centers [--search <term>] [--region <id>] [--major <id>] [--mine]"
}

func (centersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("centers", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	search := fs.String("search", "", "substring match on name and address")
	region := fs.Int64("region", 0, "region id")
	major := fs.Int64("major", 0, "major id")
	mine := fs.Bool("mine", false, "only centers owned by the session user")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	client, sess := bootstrap.Open(cfg)
	filter := service.CenterFilter{Term: *search, RegionID: *region, MajorID: *major}
	if *mine {
		if !sess.Authenticated() {
			return auth.ErrLoginRequired
		}
		filter.OwnerID = sess.UserID()
	}

	cat, err := service.NewCatalogService(client).LoadCenterBrowse(ctx)
	if err != nil {
		return err
	}
	list := service.FilterCenters(cat.Centers, filter)
	if len(list) == 0 {
		fmt.Fprintln(Out, "No centers matched")
		return nil
	}
	for _, c := range list {
		regionName := ""
		if c.Region != nil {
			regionName = c.Region.Name
		}
		fmt.Fprintf(Out, "- #%d  %s  %s  %s\n", c.ID, c.Name, c.Address, regionName)
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

func init() { RegisterCmd(centersCmd{}) }
