package config

import (
	"flag"
	"os"

	"eventtracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend origin (default from Config)
//	-t string   credential transport: bearer | cookie
//	-r string   identity resolution: local | server
//	-s string   path of the local SQLite store
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-r", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend origin")
	fs.StringVar(&cfg.AuthTransport, "t", cfg.AuthTransport, "credential transport (bearer|cookie)")
	fs.StringVar(&cfg.ResolveStrategy, "r", cfg.ResolveStrategy, "identity resolution (local|server)")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "local store path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
