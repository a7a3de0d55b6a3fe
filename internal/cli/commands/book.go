package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"findcourse/internal/cli/auth"
	"findcourse/internal/cli/bootstrap"
	"findcourse/internal/cli/service"
	"findcourse/internal/cli/store"
	"findcourse/internal/config"
)

type bookCmd struct{}

func (bookCmd) Name() string        { return "book" }
func (bookCmd) Description() string { return "Book a visit to a center" }
func (bookCmd) Usage() string {
	return "book --center <id> --major <id> --date <YYYY-MM-DD> --time <HH:MM> [--filial <id>] [--name <name> --phone <phone>]"
}

func (bookCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	center := fs.Int64("center", 0, "center id")
	major := fs.Int64("major", 0, "major id")
	filial := fs.Int64("filial", 0, "filial id, required for guests")
	date := fs.String("date", "", "visit date, YYYY-MM-DD")
	clock := fs.String("time", "", "visit time, HH:MM")
	name := fs.String("name", "", "contact name, guests only")
	phone := fs.String("phone", "", "contact phone, guests only")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	client, sess := bootstrap.Open(cfg)
	cat := &store.Catalog{}
	rec, err := service.NewMutator(client).Book(ctx, sess, cat, service.BookingInput{
		CenterID: *center,
		FilialID: *filial,
		MajorID:  *major,
		Date:     *date,
		Time:     *clock,
		Name:     *name,
		Phone:    *phone,
	})
	if err != nil {
		return err
	}
	log.Infow("booked", "reception", rec.ID, "center", *center)
	fmt.Fprintf(Out, "Booked: reception #%d, visit %s\n", rec.ID, rec.VisitDate)
	return nil
}

func init() { RegisterCmd(bookCmd{}) }

type bookingsCmd struct{}

func (bookingsCmd) Name() string        { return "bookings" }
func (bookingsCmd) Description() string { return "List own receptions" }
func (bookingsCmd) Usage() string       { return "bookings" }

func (bookingsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	_, sess := bootstrap.Open(cfg)
	if !sess.Authenticated() {
		return auth.ErrLoginRequired
	}
	profile, err := sess.Mydata(ctx)
	if err != nil {
		return err
	}
	if len(profile.Receptions) == 0 {
		fmt.Fprintln(Out, "No bookings")
		return nil
	}
	for _, r := range profile.Receptions {
		center := fmt.Sprintf("center #%d", r.CenterID)
		if r.Center != nil {
			center = r.Center.Name
		}
		major := ""
		if r.Major != nil {
			major = "  " + r.Major.Name
		}
		fmt.Fprintf(Out, "- #%d  %s%s  %s  %s\n", r.ID, center, major, r.VisitDate, r.Status)
	}
	return nil
}

func init() { RegisterCmd(bookingsCmd{}) }

type bookingCancelCmd struct{}

func (bookingCancelCmd) Name() string        { return "booking-cancel" }
func (bookingCancelCmd) Description() string { return "Cancel an own reception" }
func (bookingCancelCmd) Usage() string       { return "booking-cancel <id> [--yes]" }

func (bookingCancelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("booking-cancel", flag.ContinueOnError)
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
	if !*yes && !confirm(fmt.Sprintf("Cancel booking #%d?", id)) {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	if err := service.NewMutator(client).CancelBooking(ctx, &store.Catalog{}, id); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Booking #%d cancelled\n", id)
	return nil
}

func init() { RegisterCmd(bookingCancelCmd{}) }
