package tip

import (
	"context"

	"github.com/pkg/errors"

	"github.com/OKaluzny/sui-tips/internal/txb"
	"github.com/OKaluzny/sui-tips/pkg/models"
)

// CoinLister lists the coins of one type owned by an address.
type CoinLister interface {
	ListCoins(ctx context.Context, owner, coinType string) ([]models.Coin, error)
}

// Payload is a validated tip ready to be turned into a transaction.
type Payload struct {
	Target      string
	Owner       txb.Address
	Recipient   txb.Address
	FeeReceiver txb.Address
	Token       models.Token
	Breakdown   models.FeeBreakdown
	Message     string
}

// BuildTransaction turns p into a single Move call that pays the tip to the
// recipient and the fee to the fee receiver. Native tips split the gas coin;
// other coins are looked up through coins, merged and split.
func BuildTransaction(ctx context.Context, coins CoinLister, p Payload) (*txb.Transaction, error) {
	tx := txb.New()

	source, err := coinSource(ctx, tx, coins, p)
	if err != nil {
		return nil, err
	}

	parts := tx.SplitCoins(source, tx.PureU64(p.Breakdown.Tip), tx.PureU64(p.Breakdown.Fee))
	_, err = tx.MoveCall(p.Target, []string{p.Token.CoinType},
		parts[0],
		parts[1],
		tx.PureAddress(p.Recipient),
		tx.PureAddress(p.FeeReceiver),
		tx.PureString(p.Message),
	)
	if err != nil {
		return nil, errors.Wrap(err, "tip call")
	}
	return tx, nil
}

func coinSource(ctx context.Context, tx *txb.Transaction, coins CoinLister, p Payload) (txb.Argument, error) {
	if txb.SameType(p.Token.CoinType, models.SuiCoinType) {
		return tx.Gas(), nil
	}

	owned, err := coins.ListCoins(ctx, p.Owner.String(), p.Token.CoinType)
	if err != nil {
		return txb.Argument{}, &AdapterError{Err: err}
	}
	selected, err := txb.SelectCoins(owned, p.Breakdown.Total)
	if err != nil {
		return txb.Argument{}, &AdapterError{Err: errors.Wrapf(err, "%s balance", p.Token.Symbol)}
	}
	refs, err := txb.CoinRefs(selected)
	if err != nil {
		return txb.Argument{}, &AdapterError{Err: err}
	}

	primary := tx.Object(refs[0])
	if len(refs) > 1 {
		rest := make([]txb.Argument, 0, len(refs)-1)
		for _, r := range refs[1:] {
			rest = append(rest, tx.Object(r))
		}
		tx.MergeCoins(primary, rest...)
	}
	return primary, nil
}
