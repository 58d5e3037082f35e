// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/shopfloor-sync/internal/provider"
	"github.com/MKhiriev/shopfloor-sync/internal/schema"
	"github.com/MKhiriev/shopfloor-sync/internal/tui"
	"github.com/MKhiriev/shopfloor-sync/models"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active provider, pending changes and watermarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, false, func(ctx context.Context, app *App) error {
				// A failed resolve is part of the status, not a command error.
				if warning, err := app.Open(ctx); err == nil && warning != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), tui.RenderWarning(*warning))
				}

				status, err := app.Status(ctx)
				if err != nil {
					return err
				}
				return opts.printer(cmd).print(status, tui.RenderStatus(status))
			})
		},
	}
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync [collection...]",
		Short: "Push local changes and pull remote changes",
		Long: `Runs one sync cycle for each named collection, or for every sync-enabled
collection when none is named. Local changes are pushed before remote changes
are pulled. A failed collection keeps its pending changes and watermark.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, false, func(ctx context.Context, app *App) error {
				report, err := app.Sync(ctx, args...)
				if err != nil {
					return err
				}
				if err = opts.printer(cmd).print(report, tui.RenderReport(report)); err != nil {
					return err
				}
				if len(report.Failed()) > 0 {
					return ErrSyncFailed
				}
				return nil
			})
		},
	}
}

// NewGetCommand creates the get command.
func NewGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <key>",
		Short: "Print one record by primary key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, true, func(ctx context.Context, app *App) error {
				record, err := app.Session().GetByID(ctx, args[0], parseArg(args[1]))
				if err != nil {
					return err
				}
				return opts.printer(cmd).printRecord(record)
			})
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <collection>",
		Short: "Print every record of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, true, func(ctx context.Context, app *App) error {
				records, err := app.Session().GetAll(ctx, args[0])
				if err != nil {
					return err
				}
				return opts.printer(cmd).printRecords(records)
			})
		},
	}
}

// NewFindCommand creates the find command.
func NewFindCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find <collection> <index> <value>",
		Short: "Print the records whose indexed field equals value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, true, func(ctx context.Context, app *App) error {
				records, err := app.Session().GetByIndex(ctx, args[0], args[1], parseArg(args[2]))
				if err != nil {
					return err
				}
				return opts.printer(cmd).printRecords(records)
			})
		},
	}
}

// NewPutCommand creates the put command.
func NewPutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "put <collection> <json|->",
		Short: "Insert or overwrite records",
		Long: `Stores a JSON object, or a JSON array of objects in one transaction.
Pass "-" to read the JSON from standard input. The stored records are printed
with any generated keys filled in.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, many, err := readRecords(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}

			return opts.withApp(cmd, true, func(ctx context.Context, app *App) error {
				if !many {
					stored, err := app.Session().Put(ctx, args[0], records[0])
					if err != nil {
						return err
					}
					return opts.printer(cmd).printRecord(stored)
				}

				stored, err := app.Session().PutMany(ctx, args[0], records)
				if err != nil {
					return err
				}
				return opts.printer(cmd).printRecords(stored)
			})
		},
	}
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <collection> <key>",
		Short: "Delete one record by primary key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, true, func(ctx context.Context, app *App) error {
				if err := app.Session().Remove(ctx, args[0], parseArg(args[1])); err != nil {
					return err
				}
				return opts.printer(cmd).printDone(fmt.Sprintf("removed %s from %s", args[1], args[0]))
			})
		},
	}
}

// NewClearCommand creates the clear command.
func NewClearCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <collection>",
		Short: "Delete every record of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, true, func(ctx context.Context, app *App) error {
				if err := app.Session().Clear(ctx, args[0]); err != nil {
					return err
				}
				return opts.printer(cmd).printDone(fmt.Sprintf("cleared %s", args[0]))
			})
		},
	}
}

// NewUseCommand creates the use command.
func NewUseCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "use <remote|local>",
		Short:     "Switch the data provider",
		Long:      `Switches to the named provider and remembers it for later runs unless --prefer-remote or APP_PREFER_REMOTE is set.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(models.ProviderRemote), string(models.ProviderLocal)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := models.ProviderKind(args[0])
			if kind != models.ProviderRemote && kind != models.ProviderLocal {
				return fmt.Errorf("%w: got %q", ErrUnknownProvider, args[0])
			}

			return opts.withApp(cmd, true, func(ctx context.Context, app *App) error {
				result, err := app.Use(ctx, kind)
				if err != nil {
					return err
				}
				return opts.printer(cmd).print(toggleOutput(result), tui.RenderToggle(result))
			})
		},
	}
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the periodic sync job until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, false, func(ctx context.Context, app *App) error {
				return app.Watch(ctx)
			})
		},
	}
}

// NewVersionCommand creates the version command.
func NewVersionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.printer(cmd).print(opts.BuildInfo, tui.RenderBuildInfo(opts.BuildInfo))
		},
	}
}

// parseArg reads a key or index value typed on the command line. Valid JSON
// scalars keep their type, so "42" is a number and "\"42\"" a string;
// anything else is taken as a plain string.
func parseArg(arg string) any {
	v, err := schema.DecodeValue(arg)
	if err != nil {
		return arg
	}
	return v
}

// readRecords parses a JSON object or array of objects from arg, or from in
// when arg is "-".
func readRecords(arg string, in io.Reader) (records []models.Record, many bool, err error) {
	raw := []byte(arg)
	if arg == "-" {
		if raw, err = io.ReadAll(in); err != nil {
			return nil, false, fmt.Errorf("read records: %w", err)
		}
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		if err = json.Unmarshal([]byte(trimmed), &records); err != nil {
			return nil, false, fmt.Errorf("%w: %w", models.ErrValidation, err)
		}
		if len(records) == 0 {
			return nil, false, fmt.Errorf("%w: no records given", models.ErrValidation)
		}
		return records, true, nil
	}

	var record models.Record
	if err = json.Unmarshal([]byte(trimmed), &record); err != nil {
		return nil, false, fmt.Errorf("%w: %w", models.ErrValidation, err)
	}
	if record == nil {
		return nil, false, fmt.Errorf("%w: record must be a JSON object", models.ErrValidation)
	}
	return []models.Record{record}, false, nil
}

type toggleJSON struct {
	Switched bool                `json:"switched"`
	Active   models.ProviderKind `json:"active_provider"`
	Error    string              `json:"error,omitempty"`
}

func toggleOutput(result provider.ToggleResult) toggleJSON {
	out := toggleJSON{Switched: result.Switched, Active: result.Active}
	if result.Err != nil {
		out.Error = result.Err.Error()
	}
	return out
}

func (p *printer) print(data any, text string) error {
	if p.json {
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	_, err := fmt.Fprintln(p.out, text)
	return err
}

func (p *printer) printRecord(record models.Record) error {
	if p.json {
		return p.print(record, "")
	}
	text, err := tui.RenderRecord(record)
	if err != nil {
		return err
	}
	return p.print(nil, text)
}

func (p *printer) printRecords(records []models.Record) error {
	if records == nil {
		records = make([]models.Record, 0)
	}
	if p.json {
		return p.print(records, "")
	}
	text, err := tui.RenderRecords(records)
	if err != nil {
		return err
	}
	return p.print(nil, text)
}

func (p *printer) printDone(message string) error {
	return p.print(map[string]string{"status": "ok", "message": message}, message)
}
