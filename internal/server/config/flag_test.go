package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "hmac", "-j", "jwt",
		}, expected: &Config{
			EndpointAddrGRPC: "127.0.0.1:9090",
			DatabaseDSN:      "db",
			TokenSecret:      "hmac",
			JWTSecret:        "jwt",
		}},
		{name: "config flag is ignored here", args: []string{"cmd", "-c", "cfg.json", "-s", "hmac"},
			expected: &Config{TokenSecret: "hmac"}},
		{name: "missing value panics", args: []string{"cmd", "-s"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
