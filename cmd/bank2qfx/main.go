// Command bank2qfx converts a bank's exported transaction history (CSV, TSV
// or spreadsheet) into a QFX file compatible with Quicken-family importers.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/bank2qfx/internal/convert"
	"github.com/FACorreiaa/bank2qfx/internal/qfx"
	"github.com/FACorreiaa/bank2qfx/internal/statement"
	"github.com/FACorreiaa/bank2qfx/pkg/config"
	"github.com/FACorreiaa/bank2qfx/pkg/money"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bank2qfx",
		Short: "Convert bank transaction exports to QFX",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newConvertCommand())
	return rootCmd
}

func newConvertCommand() *cobra.Command {
	var (
		output       string
		invertCC     bool
		randomFITIDs bool
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a CSV/TSV/XLSX export to a .qfx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Output.LogLevel)

			source := args[0]
			data, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("read %s: %w", source, err)
			}

			svc := convert.NewService(logger, convert.Options{
				MaxRows:          cfg.Limits.MaxRows,
				InvertCreditCard: cfg.Account.InvertCreditCard || invertCC,
				RandomFITIDs:     randomFITIDs,
				QFX: qfx.Options{
					BankID:   cfg.Account.BankID,
					AcctID:   cfg.Account.AcctID,
					Currency: cfg.Account.Currency,
					TZSuffix: cfg.Output.TZSuffix,
				},
			})

			result, err := svc.Parse(cmd.Context(), data, filepath.Base(source))
			if err != nil {
				return err
			}

			if output == "" {
				output = strings.TrimSuffix(source, filepath.Ext(source)) + ".qfx"
			}
			if err := os.WriteFile(output, []byte(svc.Serialize(result)), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			stmt := result.Statement
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %s (%s, net %s)\n",
				source, output, stmt.Summary(), result.AccountType,
				netAmount(stmt, cfg.Account.Currency))
			for _, skip := range stmt.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "  row %d skipped: %s\n", skip.Line, skip.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: input with .qfx extension)")
	cmd.Flags().BoolVar(&invertCC, "invert-cc", false, "flip amount signs for credit-card sources")
	cmd.Flags().BoolVar(&randomFITIDs, "random-fitids", false, "use legacy random FITIDs instead of a deterministic sequence")
	return cmd
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// netAmount sums all record amounts for the CLI summary line.
func netAmount(stmt *statement.Statement, currency string) string {
	total := money.Zero(currency)
	for _, tx := range stmt.Transactions {
		sum, err := total.Add(money.NewFromDecimal(tx.Amount, currency))
		if err != nil {
			return total.Display()
		}
		total = sum
	}
	return total.Display()
}
