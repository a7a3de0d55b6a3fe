package commands

import (
	"context"
	"errors"
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

type centerCreateCmd struct{}

func (centerCreateCmd) Name() string        { return "center-create" }
func (centerCreateCmd) Description() string { return "Create a center (CEO accounts only)" }
func (centerCreateCmd) Usage() string {
	return "center-create --name <name> --address <addr> --region <id> [--phone <phone>] [--majors <id,id,...>] [--image <stored-name>]"
}

func (centerCreateCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("center-create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "center name")
	address := fs.String("address", "", "street address")
	region := fs.Int64("region", 0, "region id")
	phone := fs.String("phone", "", "contact phone")
	majors := fs.String("majors", "", "comma separated major ids")
	image := fs.String("image", "", "stored image name from upload")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	client, sess := bootstrap.Open(cfg)
	if !sess.Authenticated() {
		return auth.ErrLoginRequired
	}
	if !sess.IsCEO() {
		return errors.New("only a CEO account can manage centers")
	}
	majorIDs, err := parseIDList(*majors)
	if err != nil {
		return ErrUsage
	}
	c, err := service.NewMutator(client).CreateCenter(ctx, &store.Catalog{}, service.CenterInput{
		Name:     *name,
		Address:  *address,
		Phone:    *phone,
		Image:    *image,
		RegionID: *region,
		MajorsID: majorIDs,
	})
	if err != nil {
		return err
	}
	log.Infow("center created", "id", c.ID, "name", c.Name)
	fmt.Fprintf(Out, "Center #%d created\n", c.ID)
	return nil
}

func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func init() { RegisterCmd(centerCreateCmd{}) }
