// Command simplepool deploys and drives the SimpleToken/SimplePool contracts.
//
//	simplepool deploy --network localhost
//	simplepool swap --amount 10 --token-in A
//	simplepool add-liquidity --amount-a 5 --amount-b 5
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	application := newApp(stdout, stderr)
	root := application.rootCommand()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		application.logger.Error().Err(err).Msg("command failed")
		return exitFailure
	}
	return exitSuccess
}
