package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/coursekeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so subcommand arguments pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-i", "-r", "-w", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.IdentityURL, "i", cfg.IdentityURL, "identity service base URL")
	fs.StringVar(&cfg.ResourceURL, "r", cfg.ResourceURL, "resource service base URL")
	fs.DurationVar(&cfg.RequestTimeout, "w", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.SessionDir, "s", cfg.SessionDir, "session directory under the home directory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
