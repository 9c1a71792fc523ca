package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/focuslock/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   lock-token HMAC secret
//	-j string   access-token (JWT) HMAC secret
//
// os.Args is filtered with flagx.FilterArgs first, so -c/-config and other
// components' flags do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-j"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.TokenSecret, "s", config.TokenSecret, "lock token signing secret")
	fs.StringVar(&config.JWTSecret, "j", config.JWTSecret, "access token secret")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
