// contentgen generates an image, text or code from a prompt.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"contentgen/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
