package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/OKaluzny/sui-tips/internal/fee"
	"github.com/OKaluzny/sui-tips/pkg/models"
)

func newFeeCmd(a *app) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "fee AMOUNT",
		Short: "Show the fee breakdown for a tip amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			kind, err := models.ParseTokenKind(token)
			if err != nil {
				return err
			}
			t, ok := a.cfg.Tokens()[kind]
			if !ok {
				return errors.Errorf("token %s is not configured", kind)
			}
			b, err := fee.ForAmount(args[0], t)
			if err != nil {
				return err
			}
			d := fee.Render(b)

			if a.jsonOut {
				return printJSON(a.out, struct {
					Token     models.Token        `json:"token"`
					Breakdown models.FeeBreakdown `json:"breakdown"`
					Display   fee.Display         `json:"display"`
				}{t, b, d})
			}
			printBreakdown(a.out, d, t.Symbol)
			return nil
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "sui", "token to tip with (sui or usdc)")
	return cmd
}
