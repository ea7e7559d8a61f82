// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command simulado takes timed practice sessions from the terminal against
// the same database the API server uses.
//
//	simulado [-d url] [-t sqlite|postgres] [-owner id] lists
//	simulado [-d url] [-t sqlite|postgres] [-owner id] take [-minutes n] <listId>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		fmt.Fprintln(os.Stderr, "usage: simulado [-d url] [-t type] [-owner id] lists | take [-minutes n] <listId>")
		os.Exit(1)
	}
}
