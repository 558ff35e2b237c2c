package txb

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/OKaluzny/sui-tips/pkg/models"
)

// ErrInsufficientBalance is returned when owned coins cannot cover a target.
var ErrInsufficientBalance = errors.New("insufficient balance")

// SelectCoins picks coins largest-first until their balance covers target.
// At least one coin is always selected.
func SelectCoins(coins []models.Coin, target uint64) ([]models.Coin, error) {
	if len(coins) == 0 {
		return nil, errors.Wrap(ErrInsufficientBalance, "no coins")
	}
	sorted := make([]models.Coin, len(coins))
	copy(sorted, coins)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Balance > sorted[j].Balance
	})

	var sum uint64
	for i, c := range sorted {
		if sum > math.MaxUint64-c.Balance {
			return sorted[:i+1], nil
		}
		sum += c.Balance
		if sum >= target {
			return sorted[:i+1], nil
		}
	}
	return nil, errors.Wrapf(ErrInsufficientBalance, "have %d, need %d", sum, target)
}

// CoinRefs converts coins into object references.
func CoinRefs(coins []models.Coin) ([]ObjectRef, error) {
	refs := make([]ObjectRef, 0, len(coins))
	for _, c := range coins {
		ref, err := ParseObjectRef(c.ObjectID, c.Version, c.Digest)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
