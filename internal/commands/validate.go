package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/payfield/internal/bank"
	"github.com/cleared-dev/payfield/internal/card"
	"github.com/cleared-dev/payfield/internal/engine"
	"github.com/cleared-dev/payfield/internal/verdict"
)

const dateLayout = "2006-01-02"

func newValidateCommand(g *globalOptions) *cobra.Command {
	var checkOpts engine.CheckOptions
	var nowFlag string

	cmd := &cobra.Command{
		Use:   "validate <field> <value>",
		Short: "Validate a single field value",
		Long:  "Validate a single field value.\n\nFields: " + strings.Join(engine.Fields(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var now time.Time
			if nowFlag != "" {
				t, err := time.Parse(dateLayout, nowFlag)
				if err != nil {
					return fmt.Errorf("parsing --now: %w", err)
				}
				now = t
			}

			e, log, err := g.setup(cmd, now)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			field := args[0]
			err = e.Check(field, args[1], checkOpts)

			var ve *verdict.Error
			switch {
			case err == nil:
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s%s\n", okLabel.Sprint("OK"), field, detail(field, args[1]))
				return nil
			case errors.As(err, &ve):
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", failLabel.Sprint("FAIL"), ve.String())
				return ErrInvalid
			default:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&checkOpts.PaymentType, "payment-type", "", "payment type for amount checks (card or ach)")
	cmd.Flags().StringVar(&checkOpts.Brand, "brand", "", "card brand for cvv checks")
	cmd.Flags().StringVar(&checkOpts.CardNumber, "card", "", "card number to detect the brand from for cvv checks")
	cmd.Flags().StringVar(&nowFlag, "now", "", "reference date for expiry checks (YYYY-MM-DD)")

	return cmd
}

// detail describes a valid value without revealing it.
func detail(field, value string) string {
	switch field {
	case "card_number":
		return " " + card.DetectBrand(card.Clean(value)).DisplayName() + " " + card.Mask(value)
	case "account_number":
		return " " + bank.MaskAccount(value)
	}
	return ""
}
