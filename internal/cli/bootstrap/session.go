// Package bootstrap wires the API client and the stored session from
// config so every command starts from the same place.
package bootstrap

import (
	"time"

	"findcourse/internal/cli/api"
	"findcourse/internal/cli/auth"
	fsrepo "findcourse/internal/cli/repo/fs"
	"findcourse/internal/config"
)

// Open builds the API client and resolves the persisted session. The
// returned session is anonymous when no usable token is stored.
func Open(cfg *config.Config) (*api.Client, *auth.Session) {
	client := api.New(cfg.APIBase, time.Duration(cfg.TimeoutSec)*time.Second)
	store := fsrepo.TokenFSStore{Dir: cfg.TokenDir}
	return client, auth.Resolve(client, store)
}
