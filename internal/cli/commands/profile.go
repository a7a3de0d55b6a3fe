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

type profileCmd struct{}

func (profileCmd) Name() string        { return "profile" }
func (profileCmd) Description() string { return "Show the session user's profile" }
func (profileCmd) Usage() string       { return "profile" }

func (profileCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	client, sess := bootstrap.Open(cfg)
	profile, err := sess.Mydata(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "#%d %s\n", profile.ID, profile.FullName())
	fmt.Fprintf(Out, "  email: %s\n", profile.Email)
	fmt.Fprintf(Out, "  phone: %s\n", profile.Phone)
	fmt.Fprintf(Out, "  role:  %s\n", profile.Role)
	if profile.Image != "" {
		fmt.Fprintf(Out, "  image: %s\n", client.ImageURL(profile.Image))
	}
	fmt.Fprintf(Out, "  favorites: %d, bookings: %d\n", len(profile.Likes), len(profile.Receptions))
	return nil
}

func init() { RegisterCmd(profileCmd{}) }

type profileEditCmd struct{}

func (profileEditCmd) Name() string        { return "profile-edit" }
func (profileEditCmd) Description() string { return "Update profile fields, only changed ones are sent" }
func (profileEditCmd) Usage() string {
	return "profile-edit [--first <name>] [--last <name>] [--phone <phone>] [--image <stored-name>]"
}

func (profileEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("profile-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	phone := fs.String("phone", "", "phone number")
	image := fs.String("image", "", "stored image name from upload")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	client, sess := bootstrap.Open(cfg)
	profile, err := sess.Mydata(ctx)
	if err != nil {
		return err
	}
	err = service.NewMutator(client).UpdateProfile(ctx, &profile.User, service.ProfileEdit{
		FirstName: *first,
		LastName:  *last,
		Phone:     *phone,
		Image:     *image,
	})
	if err == service.ErrNoChanges {
		fmt.Fprintln(Out, "Nothing to update")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Profile updated")
	return nil
}

func init() { RegisterCmd(profileEditCmd{}) }

type accountDelCmd struct{}

func (accountDelCmd) Name() string        { return "account-del" }
func (accountDelCmd) Description() string { return "Delete the account and clear the session" }
func (accountDelCmd) Usage() string       { return "account-del [--yes]" }

func (accountDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("account-del", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	client, sess := bootstrap.Open(cfg)
	if !sess.Authenticated() {
		return auth.ErrLoginRequired
	}
	if !*yes && !confirm("Delete your account? This cannot be undone") {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	if err := service.NewMutator(client).DeleteAccount(ctx, sess, sess.UserID()); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Account deleted")
	return nil
}

func init() { RegisterCmd(accountDelCmd{}) }
