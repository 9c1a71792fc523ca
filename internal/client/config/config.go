package config

import (
	"os"
	"time"
)

// ConfigEnv names the environment variable consulted for the JSON config
// path when neither -c nor -config is given.
const ConfigEnv = "FOCUSLOCK_AGENT_CONFIG"

// Config holds runtime settings for the focuslock agent.
//
// Fields:
//   - ServerEndpointAddr: host:port of the server's gRPC endpoint.
//   - DatabaseFile: path of the local SQLite database.
//   - HardwareID: stable identifier of this device; defaults to the host name.
//   - Platform: "android" or "ios"; selects which permission flag counts.
//   - UserID: current identity; authoritative schedules it did not create
//     are read-only.
//   - AccessToken: bearer token for guardian calls; may be empty.
//   - ReconcileInterval: period of the heartbeat and reconciliation loop.
//   - FetchTimeout: bound on each schedule source fetch.
//   - MatchNames: suppress lower-precedence schedules sharing a name with a
//     higher-precedence one.
//   - UsageAccessGranted, ScreenTimeGranted: permission flags reported in
//     heartbeats.
type Config struct {
	ServerEndpointAddr string
	DatabaseFile       string
	HardwareID         string
	Platform           string
	UserID             string
	AccessToken        string
	ReconcileInterval  time.Duration
	FetchTimeout       time.Duration
	MatchNames         bool
	UsageAccessGranted bool
	ScreenTimeGranted  bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DatabaseFile = "focuslock.db"
	c.HardwareID, _ = os.Hostname()
	c.Platform = "android"
	c.ReconcileInterval = time.Minute
	c.FetchTimeout = 10 * time.Second
	c.MatchNames = true
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
