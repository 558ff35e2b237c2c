// Package fee derives the platform fee for a tip. Amounts are parsed into the
// token's smallest unit once, and every value shown to the user is rendered
// back from those same integers, so the displayed total is always the total
// that gets submitted.
package fee

import (
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/OKaluzny/sui-tips/pkg/models"
)

// RateBasisPoints is the platform fee: 150 bps = 1.5%.
const RateBasisPoints = 150

const basisPointsDenominator = 10_000

// maxExponentSpan bounds the exponent of a parsed amount on either side of
// the token's decimals. uint64 has 20 digits.
const maxExponentSpan = 20

// ErrInvalidAmount is returned for amounts that are not a positive decimal
// representable in the token's smallest unit.
var ErrInvalidAmount = errors.New("invalid amount")

var maxBase = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// ParseAmount converts a decimal amount in whole tokens into base units.
func ParseAmount(amount string, decimals int32) (uint64, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return 0, errors.Wrap(ErrInvalidAmount, "empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q is not a number", amount)
	}
	if !d.IsPositive() {
		return 0, errors.Wrapf(ErrInvalidAmount, "%s is not positive", s)
	}
	if exp := d.Exponent(); exp > maxExponentSpan || exp < -decimals-maxExponentSpan {
		return 0, errors.Wrapf(ErrInvalidAmount, "%s is out of range", s)
	}
	base := d.Shift(decimals)
	if !base.Equal(base.Truncate(0)) {
		return 0, errors.Wrapf(ErrInvalidAmount, "%s has more than %d decimal places", s, decimals)
	}
	if base.GreaterThan(maxBase) {
		return 0, errors.Wrapf(ErrInvalidAmount, "%s is too large", s)
	}
	return base.BigInt().Uint64(), nil
}

// Compute returns the breakdown for a tip of tip base units. The fee is
// floored to the smallest unit.
func Compute(tip uint64, decimals int32) (models.FeeBreakdown, error) {
	if tip == 0 {
		return models.FeeBreakdown{}, errors.Wrap(ErrInvalidAmount, "zero tip")
	}
	fee := decimal.NewFromBigInt(new(big.Int).SetUint64(tip), 0).
		Mul(decimal.NewFromInt(RateBasisPoints)).
		Div(decimal.NewFromInt(basisPointsDenominator)).
		Floor()
	feeBase := fee.BigInt().Uint64()
	if tip > math.MaxUint64-feeBase {
		return models.FeeBreakdown{}, errors.Wrap(ErrInvalidAmount, "total overflows")
	}
	return models.FeeBreakdown{
		Tip:      tip,
		Fee:      feeBase,
		Total:    tip + feeBase,
		Decimals: decimals,
	}, nil
}

// ForAmount parses amount and computes its breakdown for token.
func ForAmount(amount string, token models.Token) (models.FeeBreakdown, error) {
	tip, err := ParseAmount(amount, token.Decimals)
	if err != nil {
		return models.FeeBreakdown{}, err
	}
	return Compute(tip, token.Decimals)
}

// Format renders base units as a decimal amount in whole tokens, without
// trailing zeros.
func Format(base uint64, decimals int32) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(base), -decimals)
	return d.String()
}

// Display holds the breakdown rendered for a user.
type Display struct {
	Tip   string `json:"tip"`
	Fee   string `json:"fee"`
	Total string `json:"total"`
}

// Render formats every part of b.
func Render(b models.FeeBreakdown) Display {
	return Display{
		Tip:   Format(b.Tip, b.Decimals),
		Fee:   Format(b.Fee, b.Decimals),
		Total: Format(b.Total, b.Decimals),
	}
}
