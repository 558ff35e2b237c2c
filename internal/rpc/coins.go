package rpc

import (
	"context"

	"github.com/pkg/errors"

	"github.com/OKaluzny/sui-tips/pkg/models"
)

const (
	coinPageLimit = 50
	maxCoinPages  = 10
)

// CoinObject is a coin as returned by suix_getCoins.
type CoinObject struct {
	CoinType            string `json:"coinType"`
	CoinObjectID        string `json:"coinObjectId"`
	Version             Uint64 `json:"version"`
	Digest              string `json:"digest"`
	Balance             Uint64 `json:"balance"`
	PreviousTransaction string `json:"previousTransaction"`
}

// CoinPage is one page of coins.
type CoinPage struct {
	Data        []CoinObject `json:"data"`
	NextCursor  *string      `json:"nextCursor"`
	HasNextPage bool         `json:"hasNextPage"`
}

// GetCoins returns one page of owner's coins of coinType.
func (c *Client) GetCoins(ctx context.Context, owner, coinType string, cursor *string, limit int) (*CoinPage, error) {
	var page CoinPage
	if err := c.Call(ctx, "suix_getCoins", &page, owner, coinType, cursor, limit); err != nil {
		return nil, errors.Wrapf(err, "get %s coins of %s", coinType, owner)
	}
	return &page, nil
}

// ListCoins pages through owner's coins of coinType, up to a bounded number
// of pages.
func (c *Client) ListCoins(ctx context.Context, owner, coinType string) ([]models.Coin, error) {
	var (
		coins  []models.Coin
		cursor *string
	)
	for i := 0; i < maxCoinPages; i++ {
		page, err := c.GetCoins(ctx, owner, coinType, cursor, coinPageLimit)
		if err != nil {
			return nil, err
		}
		for _, co := range page.Data {
			coins = append(coins, models.Coin{
				CoinType: co.CoinType,
				ObjectID: co.CoinObjectID,
				Version:  uint64(co.Version),
				Digest:   co.Digest,
				Balance:  uint64(co.Balance),
			})
		}
		if !page.HasNextPage || page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}
	return coins, nil
}

// ReferenceGasPrice returns the current epoch's reference gas price in MIST.
func (c *Client) ReferenceGasPrice(ctx context.Context) (uint64, error) {
	var price Uint64
	if err := c.Call(ctx, "suix_getReferenceGasPrice", &price); err != nil {
		return 0, errors.Wrap(err, "reference gas price")
	}
	return uint64(price), nil
}
