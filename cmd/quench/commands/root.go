// Package commands implements the CLI commands for quench.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/quenchcheck/quench/internal/app"
)

// AppFactory builds the application for one command invocation, after the
// persistent flags are known.
type AppFactory func(configPath string, verbose bool) *app.App

// CLI represents the command line interface for quench.
type CLI struct {
	newApp  AppFactory
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app factory.
func New(newApp AppFactory) *CLI {
	rootCmd := &cobra.Command{
		Use:           "quench",
		Short:         "Incremental code-quality checks for project trees",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (default: discover quench.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	c := &CLI{
		newApp:  newApp,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut redirects command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

// buildApp reads the persistent flags and constructs the application.
func (c *CLI) buildApp(cmd *cobra.Command) *app.App {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return c.newApp(configPath, verbose)
}
