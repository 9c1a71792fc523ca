package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. Console
// satisfies it; tests provide a stub.
type execIface interface {
	Status(ctx context.Context) error
	Scan(ctx context.Context, payload string) error
	Sync(ctx context.Context) error
	Presets(ctx context.Context) error
	Start(ctx context.Context, presetID string) error
	Stop(ctx context.Context) error
}

// runREPL reads commands from scanner until EOF, "exit" or "quit", or until
// ctx is cancelled.
//
//	help              show available commands
//	status            enforcement state and last reconciliation
//	scan <payload>    redeem a scanned token payload
//	sync              run a reconciliation pass now
//	presets           list presets
//	start <preset>    start an instant preset
//	stop              lift every active restriction
//	exit | quit       leave the console
//
// Handler errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn("focuslock> ")
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: status, scan <payload>, sync, presets, start <preset>, stop, exit")

		case "status":
			_ = a.Status(ctx)

		case "scan":
			if len(args) == 0 {
				printlnFn("Usage: scan <payload>")
				continue
			}
			// Payloads are JSON and may contain spaces.
			_ = a.Scan(ctx, strings.Join(args, " "))

		case "sync":
			_ = a.Sync(ctx)

		case "presets":
			_ = a.Presets(ctx)

		case "start":
			if len(args) == 0 {
				printlnFn("Usage: start <preset>")
				continue
			}
			_ = a.Start(ctx, args[0])

		case "stop":
			_ = a.Stop(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
