package config

import (
	"flag"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DefaultAPIBase is the production findcourse API root.
const DefaultAPIBase = "https://findcourse.net.uz/api"

type Config struct {
	// APIBase is the full URL of the API root, scheme included.
	APIBase string `env:"FINDCOURSE_API"`

	// TokenDir overrides where accessToken/refreshToken files live.
	// Empty means <user config dir>/findcourse.
	TokenDir string `env:"FINDCOURSE_TOKEN_DIR"`

	// TimeoutSec bounds every request to the API.
	TimeoutSec int `env:"FINDCOURSE_TIMEOUT"`

	Verbose bool `env:"FINDCOURSE_VERBOSE"`
	Version bool `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags override only what env left unset
	flag.StringVar(&cfg.APIBase, "api", cfg.APIBase, "findcourse API base URL")
	flag.StringVar(&cfg.TokenDir, "token-dir", cfg.TokenDir, "directory holding the token files")
	flag.IntVar(&cfg.TimeoutSec, "timeout", cfg.TimeoutSec, "request timeout in seconds")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log every API request")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "show client version and exit")

	flag.Parse()

	// validate APIBase: must carry an http(s) scheme, otherwise fall
	// back to the production API
	schemeRe := regexp.MustCompile(`^https?://\S+$`)
	if !schemeRe.MatchString(cfg.APIBase) {
		cfg.APIBase = DefaultAPIBase
	}
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")

	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = 15
	}

	return cfg
}
