package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"findcourse/internal/cli/auth"
	"findcourse/internal/cli/bootstrap"
	"findcourse/internal/config"
	"findcourse/internal/model"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and send the email OTP" }
func (registerCmd) Usage() string {
	return "register --first <name> --last <name> --email <email> --phone <phone> --password <pw> [--role USER|CEO] [--image <stored-name>]"
}

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	password := fs.String("password", "", "password")
	role := fs.String("role", model.RoleUser, "account role")
	image := fs.String("image", "", "stored image name from upload")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	_, sess := bootstrap.Open(cfg)
	in := auth.RegisterInput{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Phone:     *phone,
		Password:  *password,
		Role:      *role,
		Image:     *image,
	}
	if err := sess.Register(ctx, in); err != nil {
		return err
	}
	log.Infow("registered", "email", in.Email, "role", in.Role)
	fmt.Fprintf(Out, "Account created. An OTP was sent to %s.\n", in.Email)
	fmt.Fprintf(Out, "Finish with: findcourse verify-otp --email %s --otp <code>\n", in.Email)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }

type verifyOtpCmd struct{}

func (verifyOtpCmd) Name() string        { return "verify-otp" }
func (verifyOtpCmd) Description() string { return "Confirm the emailed OTP code" }
func (verifyOtpCmd) Usage() string       { return "verify-otp --email <email> --otp <code>" }

func (verifyOtpCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("verify-otp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "email address used at register")
	otp := fs.String("otp", "", "code from the email")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if *email == "" || *otp == "" {
		return ErrUsage
	}

	_, sess := bootstrap.Open(cfg)
	if err := sess.VerifyOTP(ctx, *email, *otp); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Email verified. You can login now.")
	return nil
}

func init() { RegisterCmd(verifyOtpCmd{}) }
