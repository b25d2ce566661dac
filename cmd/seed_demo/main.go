// cmd/seed_demo/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"smartattender/internal/adapters/in/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr, run)
	stop()
	os.Exit(code)
}
