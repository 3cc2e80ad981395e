package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/naijatax/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   base URL of the tax backend
//	-t int      request timeout in seconds (0 disables it); only applied when set
//	-d string   path of the local SQLite database
//	-l string   log level: debug, info, warn or error
//
// args are filtered with flagx.FilterArgs so flags owned by other parsers
// (-c, -e) do not break this flag set.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("naijatax", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the tax backend")
	timeout := fs.Int("t", 0, "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Sub-second values from a file or the environment survive unless -t is given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
