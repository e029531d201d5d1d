// AgroAide - command-line client for the AgroAide farm assistant backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agroaide/agroaide-client/internal/apiclient"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt := &cli{out: os.Stdout}
	defer rt.close()

	root := newRootCmd(rt)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", apiclient.Message(err, err.Error()))
		return 1
	}
	return 0
}
