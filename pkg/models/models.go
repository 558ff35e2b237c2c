package models

import (
	"fmt"
	"strings"
	"time"
)

// TokenKind identifies which coin a tip is paid in.
type TokenKind string

// Supported token kinds.
const (
	TokenNative TokenKind = "NATIVE"
	TokenStable TokenKind = "STABLE"
)

// SuiCoinType is the Move type of the native coin.
const SuiCoinType = "0x2::sui::SUI"

// ParseTokenKind accepts the kind name or the symbol used in the UI.
func ParseTokenKind(s string) (TokenKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NATIVE", "SUI":
		return TokenNative, nil
	case "STABLE", "USDC":
		return TokenStable, nil
	default:
		return "", fmt.Errorf("unknown token kind %q", s)
	}
}

// Token describes a coin the client can tip with.
type Token struct {
	Kind     TokenKind `json:"kind"`
	Symbol   string    `json:"symbol"`
	CoinType string    `json:"coin_type"`
	Decimals int32     `json:"decimals"`
}

// TokenSet maps token kinds to their on-chain description.
type TokenSet map[TokenKind]Token

// ByCoinType finds the token whose Move type matches coinType.
func (s TokenSet) ByCoinType(coinType string) (Token, bool) {
	for _, t := range s {
		if strings.EqualFold(t.CoinType, coinType) {
			return t, true
		}
	}
	return Token{}, false
}

// TipRequest is what the user fills in on the tip form.
type TipRequest struct {
	Recipient string    `json:"recipient"`
	Amount    string    `json:"amount"` // decimal, in whole tokens
	Token     TokenKind `json:"token"`
	Message   string    `json:"message,omitempty"`
}

// FeeBreakdown is derived from the tip amount. All values are in the token's
// smallest unit.
type FeeBreakdown struct {
	Tip      uint64 `json:"tip"`
	Fee      uint64 `json:"fee"`
	Total    uint64 `json:"total"`
	Decimals int32  `json:"decimals"`
}

// TipEvent is a tip observed on chain.
type TipEvent struct {
	ID         string    `json:"id"`
	Sender     string    `json:"sender"`
	Recipient  string    `json:"recipient"`
	Amount     string    `json:"amount"`
	AmountBase uint64    `json:"amount_base"`
	CoinType   string    `json:"coin_type"`
	Token      TokenKind `json:"token,omitempty"`
	Symbol     string    `json:"symbol"`
	Message    string    `json:"message,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Account is the address a wallet session signs for.
type Account struct {
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
	Scheme    string `json:"scheme"`
}

// ExecutionResult is returned once a transaction has been executed.
type ExecutionResult struct {
	Digest  string `json:"digest"`
	Status  string `json:"status"`
	GasUsed uint64 `json:"gas_used,omitempty"`
}

// Coin is an owned coin object.
type Coin struct {
	CoinType string `json:"coin_type"`
	ObjectID string `json:"object_id"`
	Version  uint64 `json:"version"`
	Digest   string `json:"digest"`
	Balance  uint64 `json:"balance"`
}
