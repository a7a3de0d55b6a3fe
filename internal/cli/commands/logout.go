package commands

import (
	"context"
	"fmt"

	"findcourse/internal/cli/bootstrap"
	"findcourse/internal/config"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Clear the stored tokens" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	_, sess := bootstrap.Open(cfg)
	if err := sess.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() { RegisterCmd(logoutCmd{}) }

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Show the identity decoded from the stored token" }
func (whoamiCmd) Usage() string       { return "whoami" }

func (whoamiCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	_, sess := bootstrap.Open(cfg)
	if !sess.Authenticated() {
		fmt.Fprintln(Out, "Not logged in")
		return nil
	}
	c := sess.Claims()
	fmt.Fprintf(Out, "id:    %d\n", c.UserID)
	fmt.Fprintf(Out, "email: %s\n", c.Email)
	fmt.Fprintf(Out, "role:  %s\n", c.Role)
	return nil
}

func init() { RegisterCmd(whoamiCmd{}) }
