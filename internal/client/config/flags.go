package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/contactbook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     GraphQL endpoint (default from Config)
//	-d string     local cache path (default from Config)
//	-p int        page size (default from Config)
//	-t duration   remote request timeout, e.g. 5s (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-p", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Endpoint, "a", cfg.Endpoint, "GraphQL endpoint of the contact service")
	fs.StringVar(&cfg.CachePath, "d", cfg.CachePath, "path of the local cache database")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "number of contacts fetched per page")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "timeout of a single remote request")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
