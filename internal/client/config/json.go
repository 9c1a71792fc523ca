package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/flagx"
	"github.com/dmitrijs2005/focuslock/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// accept either strings such as "30s" or integer nanoseconds. Booleans are
// pointers so an absent key keeps the current value.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	DatabaseFile       string         `json:"database_file"`
	HardwareID         string         `json:"hardware_id"`
	Platform           string         `json:"platform"`
	UserID             string         `json:"user_id"`
	AccessToken        string         `json:"access_token"`
	ReconcileInterval  timex.Duration `json:"reconcile_interval"`
	FetchTimeout       timex.Duration `json:"fetch_timeout"`
	MatchNames         *bool          `json:"match_names"`
	UsageAccessGranted *bool          `json:"usage_access_granted"`
	ScreenTimeGranted  *bool          `json:"screen_time_granted"`
}

// parseJson overlays values from the JSON file named by -c/-config (or the
// FOCUSLOCK_AGENT_CONFIG environment variable). Fields absent from the file
// keep their current values. An unreadable or invalid file panics.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(ConfigEnv)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.DatabaseFile, jc.DatabaseFile)
	setString(&cfg.HardwareID, jc.HardwareID)
	setString(&cfg.Platform, jc.Platform)
	setString(&cfg.UserID, jc.UserID)
	setString(&cfg.AccessToken, jc.AccessToken)
	if jc.ReconcileInterval.Duration > 0 {
		cfg.ReconcileInterval = time.Duration(jc.ReconcileInterval.Duration)
	}
	if jc.FetchTimeout.Duration > 0 {
		cfg.FetchTimeout = time.Duration(jc.FetchTimeout.Duration)
	}
	setBool(&cfg.MatchNames, jc.MatchNames)
	setBool(&cfg.UsageAccessGranted, jc.UsageAccessGranted)
	setBool(&cfg.ScreenTimeGranted, jc.ScreenTimeGranted)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
