// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/shopfloor-sync/internal/config"
	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/internal/tui"
	"github.com/MKhiriev/shopfloor-sync/models"
)

// RootOptions holds the global flags. Every set flag becomes a configuration
// override; unset flags leave the environment and the JSON file in charge.
type RootOptions struct {
	ConfigPath   string
	Address      string
	DSN          string
	DeviceID     string
	PreferRemote bool
	SyncInterval time.Duration
	LogFile      string
	Format       string
	Verbose      bool

	BuildInfo models.AppBuildInfo

	// preferenceSet is filled from the parsed flags before config loading.
	preferenceSet bool
}

// ValidFormats are the accepted values of --format.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the shop-floor client command tree.
func NewRootCommand(buildInfo models.AppBuildInfo) *cobra.Command {
	opts := &RootOptions{BuildInfo: buildInfo}

	cmd := &cobra.Command{
		Use:   "shopfloor",
		Short: "Offline-first shop-floor data client",
		Long: `Reads and writes shop-floor records through the remote store while it is
reachable and through the on-device store otherwise, and synchronises local
changes with the remote store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("%w: got %q", ErrInvalidFormat, opts.Format)
			}
			opts.preferenceSet = cmd.Flags().Changed("prefer-remote")
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "path to a JSON configuration file")
	flags.StringVar(&opts.Address, "address", "", "remote store address")
	flags.StringVar(&opts.DSN, "db", "", "path of the local SQLite database")
	flags.StringVar(&opts.DeviceID, "device", "", "device identifier used in tokens and logs")
	flags.BoolVar(&opts.PreferRemote, "prefer-remote", true, "prefer the remote store over the local one")
	flags.DurationVar(&opts.SyncInterval, "sync-interval", 0, "period of the background sync job used by watch")
	flags.StringVar(&opts.LogFile, "log-file", "", "rotating log file; logs go to stderr when empty")
	flags.StringVar(&opts.Format, "format", "text", "output format (text|json)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log at debug level when logging to stderr")

	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewFindCommand(opts))
	cmd.AddCommand(NewPutCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewUseCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// overrides converts the set flags into a configuration layer.
func (o *RootOptions) overrides() *config.StructuredConfig {
	cfg := &config.StructuredConfig{
		JSONFilePath: o.ConfigPath,
		App:          config.App{DeviceID: o.DeviceID},
		Adapter:      config.Adapter{HTTPAddress: o.Address},
		Storage:      config.Storage{DB: config.DB{DSN: o.DSN}},
		Workers:      config.Workers{SyncInterval: o.SyncInterval},
		Log:          config.Log{File: o.LogFile},
	}
	if o.preferenceSet {
		prefer := o.PreferRemote
		cfg.App.PreferRemote = &prefer
	}
	return cfg
}

// newApp loads the configuration and wires an [App] for one command.
func (o *RootOptions) newApp() (*App, error) {
	cfg, err := config.GetClientConfig(o.overrides())
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}

	log := logger.NewClientLogger("shopfloor-client", cfg.LogFile)
	if cfg.LogFile == "" && !o.Verbose {
		log = log.Quiet()
	}

	s := schema.Default()
	if err = s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return NewApp(cfg, s, o.BuildInfo, log)
}

// withApp runs fn against a fresh [App] and closes it afterwards. With
// resolve set the provider session is opened first and a fallback warning
// is printed to errOut.
func (o *RootOptions) withApp(cmd *cobra.Command, resolve bool, fn func(ctx context.Context, app *App) error) (err error) {
	app, err := o.newApp()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close client: %w", closeErr)
		}
	}()

	ctx := cmd.Context()
	if resolve {
		warning, openErr := app.Open(ctx)
		if openErr != nil {
			return openErr
		}
		if warning != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), tui.RenderWarning(*warning))
		}
	}

	return fn(ctx, app)
}

func (o *RootOptions) printer(cmd *cobra.Command) *printer {
	return &printer{json: o.Format == "json", out: cmd.OutOrStdout()}
}

// printer writes command results either as JSON or as rendered text.
type printer struct {
	json bool
	out  io.Writer
}
