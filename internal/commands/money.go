package commands

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/payfield/internal/amount"
)

var zeroTime time.Time

func newFormatCommand(g *globalOptions) *cobra.Command {
	var minor bool

	cmd := &cobra.Command{
		Use:   "format <amount> <currency>",
		Short: "Format an amount for display",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := g.setup(cmd, zeroTime)
			if err != nil {
				return err
			}

			var text string
			if minor {
				cents, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("parsing minor units %q: %w", args[0], err)
				}
				text = e.FormatCurrency(amount.FromMinorUnits(cents), args[1])
			} else {
				d, err := amount.Parse(args[0])
				if err != nil {
					return err
				}
				text = e.FormatCurrency(d, args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&minor, "minor", false, "amount is given in minor units (cents)")

	return cmd
}

func newParseCommand(g *globalOptions) *cobra.Command {
	var minor bool

	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse a user-typed currency amount such as \"$1,234.56\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := g.setup(cmd, zeroTime)
			if err != nil {
				return err
			}

			d, ok := e.ParseCurrencyInput(args[0])
			if !ok {
				return errors.New("no amount found in input")
			}
			if minor {
				fmt.Fprintln(cmd.OutOrStdout(), amount.ToMinorUnits(d))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&minor, "minor", false, "print the result in minor units (cents)")

	return cmd
}
