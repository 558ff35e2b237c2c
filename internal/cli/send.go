package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/OKaluzny/sui-tips/internal/tip"
	"github.com/OKaluzny/sui-tips/pkg/models"
)

type sendFlags struct {
	To      string
	Amount  string
	Token   string
	Message string
}

func newSendCmd(a *app) *cobra.Command {
	var flags sendFlags

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a tip",
		Long: `Send a tip to a Sui address.

The recipient gets the full amount. The platform fee is paid by the sender on
top of it, in the same token, to the configured fee receiver.`,
		Example: `  suitip send --to 0xb0b... --amount 1.5
  suitip send --to 0xb0b... --amount 10 --token usdc --message "thanks!"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSend(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.To, "to", "", "recipient address")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "tip amount in whole tokens")
	cmd.Flags().StringVarP(&flags.Token, "token", "t", "sui", "token to tip with (sui or usdc)")
	cmd.Flags().StringVarP(&flags.Message, "message", "m", "", "message stored with the tip")
	return cmd
}

func (a *app) runSend(cmd *cobra.Command, flags sendFlags) error {
	kind, err := models.ParseTokenKind(flags.Token)
	if err != nil {
		return err
	}

	client := a.client()
	session, err := a.session(client)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := session.Connect(ctx); err != nil {
		return errors.Wrap(err, "connect wallet")
	}
	defer func() { _ = session.Disconnect() }()

	flow := tip.NewFlow(session, client, tip.FlowConfig{
		Target:      a.cfg.TipTarget(),
		FeeReceiver: a.cfg.FeeReceiver,
		Tokens:      a.cfg.Tokens(),
	})
	flow.SetForm(models.TipRequest{
		Recipient: flags.To,
		Amount:    flags.Amount,
		Token:     kind,
		Message:   flags.Message,
	})

	if !a.jsonOut {
		if q, err := flow.Preview(flags.Amount, kind); err == nil {
			printBreakdown(a.out, q.Display, q.Token.Symbol)
		}
		flow.OnStatus(func(st tip.Status) {
			if st.Phase.InFlight() {
				fmt.Fprintln(a.out, st.String())
			}
		})
	}

	st := flow.Send(ctx)
	if a.jsonOut {
		if err := printJSON(a.out, st); err != nil {
			return err
		}
	}
	if st.Phase != tip.PhaseSubmitted {
		return errors.New(st.String())
	}
	if !a.jsonOut {
		fmt.Fprintln(a.out, st.String())
	}
	return nil
}
