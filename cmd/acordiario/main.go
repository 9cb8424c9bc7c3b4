package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newCLI(os.Stdout, os.Environ()).execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "acordiario: %v\n", err)
		stop()
		os.Exit(1)
	}
}
