package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"newsdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   comma-separated backend base URLs (default from Config)
//	-d string   local state store DSN
//	-f string   saved token path
//	-t int      per-endpoint timeout in seconds
//	-u int      per-endpoint upload timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-f", "-t", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	baseURLs := fs.String("a", strings.Join(cfg.BaseURLs, ","), "comma-separated backend base URLs")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local state store DSN")
	fs.StringVar(&cfg.TokenFile, "f", cfg.TokenFile, "saved token path")
	attemptTimeout := fs.Int("t", int(cfg.AttemptTimeout.Seconds()), "per-endpoint timeout (in seconds)")
	uploadTimeout := fs.Int("u", int(cfg.UploadAttemptTimeout.Seconds()), "per-endpoint upload timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	var urls []string
	for _, u := range strings.Split(*baseURLs, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	cfg.BaseURLs = urls

	cfg.AttemptTimeout = time.Duration(*attemptTimeout) * time.Second
	cfg.UploadAttemptTimeout = time.Duration(*uploadTimeout) * time.Second
}
