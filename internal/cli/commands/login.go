package commands

import (
	"context"
	"fmt"

	"findcourse/internal/cli/bootstrap"
	"findcourse/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store the token pair" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	_, sess := bootstrap.Open(cfg)
	if err := sess.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	log.Infow("logged in", "email", args[0])
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
