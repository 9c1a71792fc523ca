// Package client contains the agent's building blocks for talking to the
// focuslock server and opening its local database.
//
// # Overview
//
// The package provides:
//  1. The Client interface: Ping, device registration and heartbeat, token
//     issue and redemption, and authoritative schedule list/save.
//  2. GRPCClient, a gRPC implementation that attaches the access token via an
//     interceptor and maps status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport conditions are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized. A redemption the server refused comes back
// as *RedeemError carrying the outcome code.
package client
