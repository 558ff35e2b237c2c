package feed

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/OKaluzny/sui-tips/internal/fee"
	"github.com/OKaluzny/sui-tips/internal/rpc"
	"github.com/OKaluzny/sui-tips/internal/txb"
	"github.com/OKaluzny/sui-tips/pkg/models"
)

// nativeDecimals applies to coins the client has no token entry for.
const nativeDecimals = 9

// tipPayload is the parsedJson of a TipEvent. Fields the node may render in
// more than one shape are decoded lazily.
type tipPayload struct {
	ID        json.RawMessage `json:"id"`
	Sender    string          `json:"sender"`
	Recipient string          `json:"recipient"`
	Amount    rpc.Uint64      `json:"amount"`
	CoinType  json.RawMessage `json:"coin_type"`
	Message   json.RawMessage `json:"message"`
	Timestamp rpc.Uint64      `json:"timestamp"`
}

// toTipEvent maps a raw event record into a feed entry.
func toTipEvent(ev rpc.Event, tokens models.TokenSet) (models.TipEvent, error) {
	var p tipPayload
	if len(ev.ParsedJSON) > 0 {
		if err := json.Unmarshal(ev.ParsedJSON, &p); err != nil {
			return models.TipEvent{}, errors.Wrapf(err, "event %s:%d payload", ev.ID.TxDigest, ev.ID.EventSeq)
		}
	}

	coinType := decodeTypeName(p.CoinType)
	if coinType == "" {
		coinType = models.SuiCoinType
	}
	token, known := matchToken(tokens, coinType)
	decimals := int32(nativeDecimals)
	symbol := symbolOf(coinType)
	if known {
		decimals = token.Decimals
		symbol = token.Symbol
	}

	id := decodeID(p.ID)
	if id == "" {
		id = fmt.Sprintf("%s:%d", ev.ID.TxDigest, ev.ID.EventSeq)
	}

	ms := uint64(p.Timestamp)
	if ms == 0 {
		ms = uint64(ev.TimestampMs)
	}

	sender := p.Sender
	if sender == "" {
		sender = ev.Sender
	}

	return models.TipEvent{
		ID:         id,
		Sender:     sender,
		Recipient:  p.Recipient,
		Amount:     fee.Format(uint64(p.Amount), decimals),
		AmountBase: uint64(p.Amount),
		CoinType:   coinType,
		Token:      token.Kind,
		Symbol:     symbol,
		Message:    decodeMessage(p.Message),
		Timestamp:  time.UnixMilli(int64(ms)).UTC(),
	}, nil
}

func matchToken(tokens models.TokenSet, coinType string) (models.Token, bool) {
	if t, ok := tokens.ByCoinType(coinType); ok {
		return t, true
	}
	for _, t := range tokens {
		if txb.SameType(t.CoinType, coinType) {
			return t, true
		}
	}
	return models.Token{}, false
}

// decodeTypeName accepts a plain string or a std::type_name::TypeName
// rendered as {"name": "..."}.
func decodeTypeName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.TrimSpace(s)
	}
	var tn struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &tn) == nil {
		return strings.TrimSpace(tn.Name)
	}
	return ""
}

// decodeID accepts a string, a UID ({"id": "0x..."}) or a number.
func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var uid struct {
		ID string `json:"id"`
	}
	if json.Unmarshal(raw, &uid) == nil && uid.ID != "" {
		return uid.ID
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// decodeMessage accepts a string or a vector<u8> rendered as a byte array.
func decodeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var nums []int
	if json.Unmarshal(raw, &nums) != nil {
		return ""
	}
	b := make([]byte, 0, len(nums))
	for _, n := range nums {
		b = append(b, byte(n))
	}
	return string(b)
}

func symbolOf(coinType string) string {
	if j := strings.IndexByte(coinType, '<'); j >= 0 {
		coinType = coinType[:j]
	}
	if i := strings.LastIndex(coinType, "::"); i >= 0 {
		return coinType[i+2:]
	}
	return coinType
}
