// Package config loads runtime configuration for the focuslock agent.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or the
//     FOCUSLOCK_AGENT_CONFIG environment variable.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "database_file": "focuslock.db",
//	  "hardware_id": "pixel-7-abc",
//	  "platform": "android",
//	  "user_id": "child-1",
//	  "access_token": "eyJ...",
//	  "reconcile_interval": "1m",
//	  "fetch_timeout": "10s",
//	  "match_names": true,
//	  "usage_access_granted": true,
//	  "screen_time_granted": false
//	}
package config
