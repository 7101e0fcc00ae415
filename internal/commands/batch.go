package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/payfield/internal/batch"
)

func newBatchCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file.csv>",
		Short: "Validate field,value[,context] rows from a CSV file",
		Long: "Validate field,value[,context] rows from a CSV file (\"-\" for stdin).\n" +
			"Results are written to stdout as " + batch.Header + " rows.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, log, err := g.setup(cmd, zeroTime)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening batch file: %w", err)
				}
				defer f.Close()
				in = f
			}

			sum, err := batch.Run(in, cmd.OutOrStdout(), e)
			if err != nil {
				return err
			}
			log.Info("batch complete",
				zap.Int("total", sum.Total),
				zap.Int("valid", sum.Valid),
				zap.Int("invalid", sum.Invalid),
				zap.Int("errors", sum.Errors),
			)
			if sum.Invalid > 0 || sum.Errors > 0 {
				return ErrInvalid
			}
			return nil
		},
	}
}
