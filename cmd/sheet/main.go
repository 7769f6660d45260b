// Command sheet edits the checklist from the terminal, against the same
// storage the server uses.
//
// Examples:
//
//	sheet list
//	sheet topic add "Dynamic Programming"
//	sheet question done <topic-id> <question-id>
//	sheet --ephemeral --json list
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
