package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"findcourse/internal/cli/auth"
	"findcourse/internal/cli/bootstrap"
	"findcourse/internal/config"
)

type uploadCmd struct{}

func (uploadCmd) Name() string        { return "upload" }
func (uploadCmd) Description() string { return "Upload an image, prints the stored name" }
func (uploadCmd) Usage() string       { return "upload <file>" }

func (uploadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	client, sess := bootstrap.Open(cfg)
	if !sess.Authenticated() {
		return auth.ErrLoginRequired
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	stored, err := client.Upload(ctx, filepath.Base(args[0]), f)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Uploaded: %s\n", stored)
	fmt.Fprintf(Out, "URL: %s\n", client.ImageURL(stored))
	return nil
}

func init() { RegisterCmd(uploadCmd{}) }
