package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "calc",
		Short:         "Two-operand calculator with session history",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("log-level", "info", "diagnostic log level (debug, info, warn, error)")
	root.PersistentFlags().String("timestamp-layout", calculator.DefaultTimestampLayout, "time layout of history timestamps")

	root.AddCommand(newEvalCmd(), newReplCmd())
	return root
}

// newSession loads configuration with the command's flags applied and
// returns a session logging to stderr.
func newSession(cmd *cobra.Command) (*calculator.Session, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	if err := observability.InitLogger(cfg.Log.Level, "console"); err != nil {
		return nil, err
	}

	return calculator.NewSession(
		calculator.WithLogger(observability.Logger),
		calculator.WithTimestampLayout(cfg.Calculator.TimestampLayout),
	), nil
}

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <a> <op> <b>",
		Short: "Evaluate a single operation",
		Long: "Evaluate a single operation. Operators: + - * / ^ % or their names\n" +
			"(add subtract multiply divide power modulo).\n" +
			"Use -- before negative operands, e.g. calc eval -- -3 ^ 2.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer observability.SyncLogger()

			out, err := s.Evaluate(args[0], args[2], operatorArg(args[1]))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), calculator.Number(out.Result))
			return nil
		},
	}
}

// operatorArg turns a command-line operator into a token, accepting operation
// names case-insensitively. Anything else is passed through unchanged.
func operatorArg(arg string) calculator.Operator {
	op := calculator.Operator(arg)
	if op.Known() {
		return op
	}
	if named, ok := calculator.OperatorByName(strings.ToLower(arg)); ok {
		return named
	}
	return op
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer observability.SyncLogger()

			r := &repl{session: s, in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
			if err := r.run(); err != nil && !errors.Is(err, errQuit) {
				return err
			}
			return nil
		},
	}
}
