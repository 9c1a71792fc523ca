package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the server
//	-f string   local database file
//	-h string   hardware id
//	-p string   platform (android|ios)
//	-u string   current user id
//	-k string   access token
//	-i int      reconcile interval in seconds
//	-t int      fetch timeout in seconds
//
// os.Args is filtered with flagx.FilterArgs first, so -c/-config and other
// components' flags do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-h", "-p", "-u", "-k", "-i", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.DatabaseFile, "f", cfg.DatabaseFile, "local database file")
	fs.StringVar(&cfg.HardwareID, "h", cfg.HardwareID, "hardware id of this device")
	fs.StringVar(&cfg.Platform, "p", cfg.Platform, "platform (android|ios)")
	fs.StringVar(&cfg.UserID, "u", cfg.UserID, "current user id")
	fs.StringVar(&cfg.AccessToken, "k", cfg.AccessToken, "access token")
	reconcileInterval := fs.Int("i", int(cfg.ReconcileInterval.Seconds()), "reconcile interval (in seconds)")
	fetchTimeout := fs.Int("t", int(cfg.FetchTimeout.Seconds()), "schedule fetch timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ReconcileInterval = time.Duration(*reconcileInterval) * time.Second
	cfg.FetchTimeout = time.Duration(*fetchTimeout) * time.Second
}
