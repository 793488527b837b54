package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dora-network/dora-safemath/host"
	"github.com/dora-network/dora-safemath/ledger"
	"github.com/dora-network/dora-safemath/metrics"
)

const metricsNamespace = "safemath"

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Balances    string
	MetricsPort int
}

// Instruction is one line of batch input: a named list of ledger entries that
// are applied all together or not at all.
type Instruction struct {
	Name    string         `json:"name"`
	Entries []ledger.Entry `json:"entries"`
}

// InstructionResult reports the outcome of one Instruction.
type InstructionResult struct {
	Name    string        `json:"name"`
	Applied bool          `json:"applied"`
	Failure *host.Failure `json:"failure,omitempty"`
}

// BatchResult is the JSON payload of the batch command.
type BatchResult struct {
	Results  []InstructionResult `json:"results"`
	Balances map[string]uint64   `json:"balances"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Apply ledger instructions from a JSON stream",
		Long: `Apply ledger instructions read from file (or stdin) to a set of balances.

Each instruction is a JSON object:
  {"name":"pay-1","entries":[{"asset_id":"USDC","amount":5,"debit":true},{"asset_id":"BOND","amount":1}]}

An instruction whose entries overflow or underflow is aborted as a whole and the
next instruction runs against the balances as they were before it. The command
exits with 1 if any instruction was aborted.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "cannot open input", err)
				}
				defer f.Close()
				in = f
			}
			return runBatch(cmd.Context(), opts, cmd, in)
		},
	}

	cmd.Flags().StringVar(&opts.Balances, "balances", "{}", `initial balances as JSON, e.g. '{"USDC":100}'`)
	cmd.Flags().IntVar(&opts.MetricsPort, "metrics-port", 0, "serve prometheus metrics on this port while running (0 disables)")

	return cmd
}

func runBatch(ctx context.Context, opts *BatchOptions, cmd *cobra.Command, in io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := opts.formatter(cmd)
	log := opts.logger(cmd)

	state := ledger.EmptyBalances()
	if err := json.Unmarshal([]byte(opts.Balances), &state.Bals); err != nil {
		return reportCommandError(out, fmt.Errorf("invalid --balances: %w", err))
	}

	instrumentation := metrics.NewSafeMathInstrumentation(metricsNamespace)
	if opts.MetricsPort > 0 {
		cfg := metrics.DefaultConfig()
		cfg.Port = opts.MetricsPort
		srv, err := metrics.StartMetricsServer(cfg, instrumentation, log, Version)
		if err != nil {
			return WrapExitError(ExitCommandError, "cannot start metrics server", err)
		}
		defer func() {
			if err := srv.Stop(); err != nil {
				log.Warn().Err(err).Msg("failed to stop metrics server")
			}
		}()
	}

	exec := host.NewExecutor(host.WithLogger(log), host.WithInstrumentation(instrumentation))

	var (
		results []InstructionResult
		aborted int
	)
	dec := json.NewDecoder(in)
	for line := 1; ; line++ {
		var ins Instruction
		if err := dec.Decode(&ins); err != nil {
			if stderrors.Is(err, io.EOF) {
				break
			}
			return reportCommandError(out, fmt.Errorf("instruction %d: %w", line, err))
		}
		if ins.Name == "" {
			ins.Name = fmt.Sprintf("instruction-%d", line)
		}

		next, err := host.Transact(ctx, exec, ins.Name, state, (*ledger.Balances).Copy,
			func(_ context.Context, b *ledger.Balances) error {
				return b.Apply(ins.Entries...)
			})
		result := InstructionResult{Name: ins.Name, Applied: err == nil}
		if err != nil {
			failure, ok := host.NewFailure(err)
			if !ok {
				return reportCommandError(out, fmt.Errorf("%s: %w", ins.Name, err))
			}
			result.Failure = &failure
			aborted++
		}
		out.VerboseLog("%s applied=%t", ins.Name, result.Applied)
		results = append(results, result)
		state = next
	}

	text, err := batchText(results, state)
	if err != nil {
		return err
	}
	if err := out.Success(text, BatchResult{Results: results, Balances: state.Bals}); err != nil {
		return err
	}
	if aborted > 0 {
		return &ExitError{
			Code:     ExitFailure,
			Message:  fmt.Sprintf("%d of %d instructions aborted", aborted, len(results)),
			Reported: true,
		}
	}
	return nil
}

func batchText(results []InstructionResult, state *ledger.Balances) (string, error) {
	var b strings.Builder
	for _, r := range results {
		if r.Failure != nil {
			fmt.Fprintf(&b, "%s\taborted\t%s (code %d)\n", r.Name, r.Failure.Message, r.Failure.Code)
			continue
		}
		fmt.Fprintf(&b, "%s\tok\n", r.Name)
	}
	data, err := json.Marshal(state.Bals)
	if err != nil {
		return "", fmt.Errorf("encode balances: %w", err)
	}
	fmt.Fprintf(&b, "balances\t%s", data)
	return b.String(), nil
}
