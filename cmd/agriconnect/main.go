// Command agriconnect runs the storefront core: a local HTTP API for the
// page views plus cart, session and order commands for the terminal.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Slganeshkarthik/AgriConnect/internal/app"
	"github.com/Slganeshkarthik/AgriConnect/internal/pkg/config"
	"github.com/Slganeshkarthik/AgriConnect/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli carries what PersistentPreRunE resolved for the subcommands.
type cli struct {
	envFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "agriconnect",
		Short:        "AgriConnect storefront core",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		newServeCmd(c),
		newCartCmd(c),
		newSessionCmd(c),
		newCheckoutCmd(c),
		newOrdersCmd(c),
	)
	return root
}

func (c *cli) init(ctx context.Context) error {
	// Variables already set in the environment win over the file.
	if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", c.envFile, err)
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "agriconnect",
	})
	return nil
}

// withApp builds the app for one command and closes it afterwards.
func (c *cli) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) (err error) {
	ctx := cmd.Context()
	a, err := app.New(ctx, c.cfg, logger.Get())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(ctx, a)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
