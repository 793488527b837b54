package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dora-network/dora-safemath/host"
	"github.com/dora-network/dora-safemath/math"
)

// EnvWidth sets the default for the --width flag.
const EnvWidth = "SAFEMATH_WIDTH"

const defaultWidth = "u64"

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Width              string
	LegacyMulUnderflow bool
}

// EvalResult is the JSON payload of a successful eval.
type EvalResult struct {
	Op     string     `json:"op"`
	Width  math.Width `json:"width"`
	A      string     `json:"a"`
	B      string     `json:"b"`
	Result string     `json:"result"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <op> <a> <b>",
		Short: "Run one checked operation",
		Long: `Run one checked operation and print the result.

<op> is one of add, sub, mul, div, pow (or safe_add, +, -, *, /, **).
For pow, <b> is the exponent and must fit in 32 bits.

Example:
  safemath eval add 200 100 --width u8
  Error [6000]: overflow`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, cmd, args[0], args[1], args[2])
		},
	}

	width := defaultWidth
	if v, ok := os.LookupEnv(EnvWidth); ok && v != "" {
		width = v
	}
	cmd.Flags().StringVarP(&opts.Width, "width", "w", width, "integer width (u8|u16|u32|u64|u128), defaults to $"+EnvWidth)
	cmd.Flags().BoolVar(&opts.LegacyMulUnderflow, "legacy-mul-underflow", false, "report multiplication overflow as underflow")

	return cmd
}

func runEval(opts *EvalOptions, cmd *cobra.Command, opArg, a, b string) error {
	out := opts.formatter(cmd)

	w, err := math.ParseWidth(opts.Width)
	if err != nil {
		return reportCommandError(out, err)
	}
	op, err := math.ParseOp(opArg)
	if err != nil {
		return reportCommandError(out, err)
	}
	out.VerboseLog("eval %s %s %s as %s", op, a, b, w)

	result, err := math.Evaluator{LegacyMulUnderflow: opts.LegacyMulUnderflow}.Evaluate(op, w, a, b)
	if err != nil {
		if failure, ok := host.NewFailure(err); ok {
			if werr := out.Error(CLIError{
				Code:    strconv.FormatUint(uint64(failure.Code), 10),
				Kind:    failure.Kind.Name(),
				Message: failure.Message,
			}); werr != nil {
				return werr
			}
			return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%s failed", op), Err: err, Reported: true}
		}
		return reportCommandError(out, err)
	}

	return out.Success(result, EvalResult{
		Op:     op.String(),
		Width:  w,
		A:      a,
		B:      b,
		Result: result,
	})
}

// reportCommandError writes err as a usage error and returns the matching ExitError.
func reportCommandError(out *OutputFormatter, err error) error {
	if werr := out.Error(CLIError{Code: "usage", Message: err.Error()}); werr != nil {
		return werr
	}
	return &ExitError{Code: ExitCommandError, Message: "invalid input", Err: err, Reported: true}
}
