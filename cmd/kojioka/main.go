package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kojioka/kojioka-go/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	code := run(ctx)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context) int {
	c := cli.New(os.Stdout, os.Stderr, cli.LogInfo)
	defer c.Close()

	err := c.RootCommand().ExecuteContext(ctx)
	if err == nil {
		return cli.ExitOK
	}
	code := cli.ExitCode(err)
	if code != cli.ExitCanceled {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
	}
	return code
}
