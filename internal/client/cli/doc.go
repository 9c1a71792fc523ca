// Package cli is the interactive agent console: a small read-eval-print loop
// over the agent services for scanning tokens, inspecting enforcement state,
// managing presets and triggering reconciliation by hand.
package cli
