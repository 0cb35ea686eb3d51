// Package main is the entry point for the quench CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/quenchcheck/quench/cmd/quench/commands"
	"github.com/quenchcheck/quench/internal/adapters/config"
	"github.com/quenchcheck/quench/internal/adapters/logger"
	"github.com/quenchcheck/quench/internal/app"
	"github.com/quenchcheck/quench/internal/core/domain"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, domain.ErrViolationsFound) {
			os.Exit(1)
		}
		// zerr prints a report with metadata when using %+v.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(2)
	}
}

func run() error {
	fs := afero.NewOsFs()

	cli := commands.New(func(configPath string, verbose bool) *app.App {
		log := logger.New(verbose)
		loader := &config.FileLoader{FS: fs, Path: configPath}
		return app.New(fs, loader, log, os.Stdout)
	})

	return cli.Execute(context.Background())
}
