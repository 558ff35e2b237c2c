package rpc

import (
	"context"
	"encoding/base64"

	"github.com/pkg/errors"
)

// Execution statuses reported in transaction effects.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// ExecutionStatus is the outcome recorded in effects.
type ExecutionStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// GasCostSummary is the gas charged for a transaction.
type GasCostSummary struct {
	ComputationCost Uint64 `json:"computationCost"`
	StorageCost     Uint64 `json:"storageCost"`
	StorageRebate   Uint64 `json:"storageRebate"`
}

// Net returns computation plus storage cost minus the rebate, floored at zero.
func (g GasCostSummary) Net() uint64 {
	spent := uint64(g.ComputationCost) + uint64(g.StorageCost)
	if uint64(g.StorageRebate) >= spent {
		return 0
	}
	return spent - uint64(g.StorageRebate)
}

// Effects is the subset of transaction effects the client reads.
type Effects struct {
	Status  ExecutionStatus `json:"status"`
	GasUsed GasCostSummary  `json:"gasUsed"`
}

// TransactionResponse is returned by sui_executeTransactionBlock.
type TransactionResponse struct {
	Digest  string   `json:"digest"`
	Effects *Effects `json:"effects"`
	Errors  []string `json:"errors,omitempty"`
}

// ExecuteTransactionBlock submits signed transaction bytes and waits for
// local execution.
func (c *Client) ExecuteTransactionBlock(ctx context.Context, txBytes []byte, signatures []string) (*TransactionResponse, error) {
	options := map[string]bool{
		"showEffects": true,
	}
	var resp TransactionResponse
	err := c.Call(ctx, "sui_executeTransactionBlock", &resp,
		base64.StdEncoding.EncodeToString(txBytes),
		signatures,
		options,
		"WaitForLocalExecution",
	)
	if err != nil {
		return nil, errors.Wrap(err, "execute transaction")
	}
	return &resp, nil
}
