package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/askiada/go-remap/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cli.Execute(ctx, os.Stdout, os.Stderr)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) //nolint:gocritic // standard exit code after SIGINT
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1) //nolint:gocritic
	}
}
