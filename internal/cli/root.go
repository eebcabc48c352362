package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"staff_portal/internal/config"
	"staff_portal/internal/storage/backend"

	"github.com/spf13/cobra"
)

// StoreOpener returns the document store described by the config at configPath.
type StoreOpener func(ctx context.Context, configPath string) (backend.Store, func(), error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string // "json" | "text"
	Verbose    bool

	open StoreOpener
}

var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for staffctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(openConfigured)
}

func newRootCommand(open StoreOpener) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "staffctl",
		Short: "staffctl inspects the staff portal document store",
		Long: `staffctl reads the same store the staff portal server uses
and prints accounts, the employee directory and messages, or checks the
document for inconsistencies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", config.Path(), "path to config.yaml")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewUsersCommand(opts))
	cmd.AddCommand(NewEmployeesCommand(opts))
	cmd.AddCommand(NewMessagesCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

func openConfigured(ctx context.Context, configPath string) (backend.Store, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	return backend.Open(ctx, cfg.Storage)
}

// logger writes to stderr so json output stays clean.
func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
