package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/OKaluzny/sui-tips/internal/fee"
	"github.com/OKaluzny/sui-tips/pkg/models"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printBreakdown(w io.Writer, d fee.Display, symbol string) {
	fmt.Fprintf(w, "Tip:   %s %s\n", d.Tip, symbol)
	fmt.Fprintf(w, "Fee:   %s %s (%s)\n", d.Fee, symbol, feeRate())
	fmt.Fprintf(w, "Total: %s %s\n", d.Total, symbol)
}

func feeRate() string {
	return fee.Format(fee.RateBasisPoints, 2) + "%"
}

func printFeed(w io.Writer, events []models.TipEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No tips yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tAMOUNT\tFROM\tTO\tMESSAGE")
	for _, ev := range events {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\n",
			ev.Timestamp.Local().Format(time.DateTime),
			ev.Amount, ev.Symbol,
			short(ev.Sender),
			short(ev.Recipient),
			ev.Message,
		)
	}
	tw.Flush()
}

func short(addr string) string {
	if len(addr) <= 14 {
		return addr
	}
	return addr[:8] + "…" + addr[len(addr)-4:]
}
