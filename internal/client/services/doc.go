// Package services contains the agent's application services: device
// registration and heartbeat, token scanning, preset management and
// guardian schedule editing. Each service that changes what should be
// enforced finishes by running a reconciliation pass.
package services
