package feed

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/OKaluzny/sui-tips/internal/rpc"
	"github.com/OKaluzny/sui-tips/pkg/models"
)

func TestToTipEvent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		tsMs    uint64
		check   func(t *testing.T, ev models.TipEvent)
	}{
		{
			name:    "native defaults",
			payload: `{"id":"tip-1","sender":"0xa","recipient":"0xb","amount":"1500000000","message":"gm","timestamp":"1700000000000"}`,
			check: func(t *testing.T, ev models.TipEvent) {
				if ev.Amount != "1.5" || ev.Symbol != "SUI" || ev.CoinType != models.SuiCoinType {
					t.Errorf("got amount %s %s (%s)", ev.Amount, ev.Symbol, ev.CoinType)
				}
				if ev.Token != models.TokenNative {
					t.Errorf("Token = %q, want NATIVE", ev.Token)
				}
				if ev.Message != "gm" || ev.ID != "tip-1" {
					t.Errorf("got id %q message %q", ev.ID, ev.Message)
				}
				if !ev.Timestamp.Equal(time.UnixMilli(1_700_000_000_000)) {
					t.Errorf("Timestamp = %v", ev.Timestamp)
				}
			},
		},
		{
			name:    "stable coin by type name",
			payload: `{"amount":"2500000","coin_type":{"name":"5d4b302506645c37ff133b98c4b50a5ae14841659738d6d733d59d0d217a93bf::coin::COIN"}}`,
			check: func(t *testing.T, ev models.TipEvent) {
				if ev.Token != models.TokenStable || ev.Symbol != "USDC" {
					t.Errorf("token = %q %s, want STABLE USDC", ev.Token, ev.Symbol)
				}
				if ev.Amount != "2.5" || ev.AmountBase != 2_500_000 {
					t.Errorf("amount = %s (%d)", ev.Amount, ev.AmountBase)
				}
			},
		},
		{
			name:    "fallbacks from the event record",
			payload: `{"amount":"1","message":[104,105]}`,
			tsMs:    42,
			check: func(t *testing.T, ev models.TipEvent) {
				if ev.ID != "DIGEST:3" {
					t.Errorf("ID = %s, want DIGEST:3", ev.ID)
				}
				if ev.Timestamp.UnixMilli() != 42 {
					t.Errorf("timestamp should fall back to timestampMs, got %v", ev.Timestamp)
				}
				if ev.Message != "hi" {
					t.Errorf("byte-vector message = %q, want hi", ev.Message)
				}
				if ev.Sender != "0xsender" {
					t.Errorf("sender should fall back to the event sender, got %s", ev.Sender)
				}
			},
		},
		{
			name:    "unknown coin",
			payload: `{"amount":"5","coin_type":"0xabc::meme::MEME"}`,
			check: func(t *testing.T, ev models.TipEvent) {
				if ev.Symbol != "MEME" || ev.Token != "" {
					t.Errorf("symbol = %s token = %q", ev.Symbol, ev.Token)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rpc.Event{
				ID:          rpc.EventID{TxDigest: "DIGEST", EventSeq: 3},
				Sender:      "0xsender",
				ParsedJSON:  json.RawMessage(tt.payload),
				TimestampMs: rpc.Uint64(tt.tsMs),
			}
			ev, err := toTipEvent(raw, testTokens)
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, ev)
		})
	}
}

func TestToTipEvent_Malformed(t *testing.T) {
	raw := rpc.Event{ParsedJSON: json.RawMessage(`{"amount":"not-a-number"}`)}
	if _, err := toTipEvent(raw, testTokens); err == nil {
		t.Error("expected error for a malformed amount")
	}
}
