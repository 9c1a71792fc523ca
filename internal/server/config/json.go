package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/flagx"
	"github.com/dmitrijs2005/focuslock/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations
// accept either strings such as "30s" or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      string         `json:"database_dsn"`
	TokenSecret      string         `json:"token_secret"`
	JWTSecret        string         `json:"jwt_secret"`
	StartupTimeout   timex.Duration `json:"startup_timeout"`
}

// parseJson overlays values from the JSON file named by -c/-config (or the
// FOCUSLOCK_SERVER_CONFIG environment variable). Fields absent from the file
// keep their current values. An unreadable or invalid file panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigPath(ConfigEnv)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.TokenSecret != "" {
		config.TokenSecret = c.TokenSecret
	}
	if c.JWTSecret != "" {
		config.JWTSecret = c.JWTSecret
	}
	if c.StartupTimeout.Duration > 0 {
		config.StartupTimeout = time.Duration(c.StartupTimeout.Duration)
	}
}
