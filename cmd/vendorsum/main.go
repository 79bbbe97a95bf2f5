package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/nipunchauhan/vendorsum/internal/cli"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(vendorsum.ExitPanic)
		}
	}()

	if os.Getenv("VENDORSUM_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(vendorsum.ExitCodeForError(err))
	}
}
