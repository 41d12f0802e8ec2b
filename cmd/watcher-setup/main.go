package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/LotCoM/watcher-setup/internal/cli"
	"github.com/LotCoM/watcher-setup/pkg/setup"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(setup.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(setup.ExitCodeForError(err))
	}
}
