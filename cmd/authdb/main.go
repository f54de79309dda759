package main

import (
	"context"
	"fmt"
	"os"

	"github.com/avolkov/authdb/internal/cli"
	"github.com/avolkov/authdb/internal/config"
	"github.com/avolkov/authdb/internal/flagx"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	if cfg.CommandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.CommandTimeout)
		defer cancel()
	}

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer app.Close()

	args := flagx.ExcludeArgs(os.Args[1:], []string{"-d", "-l", "-c", "-config"})

	if err := app.Dispatch(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
