package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"course-catalog/internal/apierr"
	"course-catalog/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s (%v)\n", apierr.Describe(err), err)
		stop()
		os.Exit(1)
	}
}
