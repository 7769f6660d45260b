package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dndsheet/internal/app"
	"github.com/heartmarshall/dndsheet/internal/config"
	"github.com/heartmarshall/dndsheet/internal/service/sheet"
)

// cli holds the global flags and the store opened for the running command.
type cli struct {
	configPath string
	jsonOut    bool
	ephemeral  bool
	verbose    bool

	stderr io.Writer
	store  *app.Store
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{stderr: stderr}
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if closeErr := c.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "sheet",
		Short:         "Edit the DSA question checklist",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default $CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVar(&c.ephemeral, "ephemeral", false, "use in-memory storage; nothing is saved")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newListCmd(c),
		newTopicCmd(c),
		newQuestionCmd(c),
		newDarkModeCmd(c),
		newResetCmd(c),
		newVersionCmd(),
	)
	return root
}

// sheet opens the configured store on first use and hydrates it.
func (c *cli) sheet(cmd *cobra.Command) (*sheet.Service, error) {
	if c.store != nil {
		return c.store.Sheet, nil
	}

	load := config.Load
	if c.configPath != "" {
		load = func() (*config.Config, error) { return config.LoadFrom(c.configPath) }
	}
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if c.ephemeral {
		cfg.Storage.Driver = config.DriverMemory
	}

	logCfg := config.LogConfig{Level: "warn", Format: "text"}
	if c.verbose {
		logCfg.Level = "debug"
	}
	logger := app.NewLoggerTo(c.stderr, logCfg)

	store, err := app.OpenStore(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}
	c.store = store

	if err := store.Sheet.Hydrate(cmd.Context()); err != nil {
		return nil, err
	}
	logger.Debug("sheet ready", slog.String("driver", cfg.Storage.Driver))
	return store.Sheet, nil
}

func (c *cli) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}
