package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dora-network/dora-safemath/logger"
)

// Version is reported by the metrics version gauge. Set with -ldflags "-X".
var Version = "dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the safemath CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "safemath",
		Short: "Checked unsigned integer arithmetic",
		Long: `Checked arithmetic over u8, u16, u32, u64 and u128.

Every operation returns the exact result or one of three errors:
overflow, underflow or division by zero.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewKindsCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))

	return cmd
}

// formatter returns an OutputFormatter writing to the command's streams.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// logger derives the command logger from the global one, so it keeps its
// instance_id and any fields added with logger.AddFieldsToGlobal, and redirects it
// to the command's stderr (and the log file, when SAFEMATH_LOG_DIR is set).
// The level is debug with --verbose, otherwise $SAFEMATH_LOG_LEVEL or error.
func (o *RootOptions) logger(cmd *cobra.Command) zerolog.Logger {
	var w io.Writer = cmd.ErrOrStderr()
	if f, err := logger.Logfile(); err == nil && f != nil {
		w = zerolog.MultiLevelWriter(w, f)
	}

	level := logger.Level(zerolog.ErrorLevel)
	if o.Verbose {
		level = zerolog.DebugLevel
	}
	return logger.Global().
		Output(w).
		Level(level).
		With().
		Str("command", cmd.Name()).
		Logger()
}
