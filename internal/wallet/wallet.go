package wallet

import (
	"context"

	"github.com/OKaluzny/sui-tips/internal/txb"
	"github.com/OKaluzny/sui-tips/pkg/models"
)

// Session is a connected wallet holding signing authority for one account.
// The tip flow never touches keys or the network directly; it hands a
// transaction to the session and treats the result as authoritative.
type Session interface {
	// Connect unlocks the account and returns it
	Connect(ctx context.Context) (models.Account, error)

	// Disconnect forgets the unlocked key
	Disconnect() error

	// CurrentAccount returns the connected account, if any
	CurrentAccount() (models.Account, bool)

	// SignAndSubmit completes gas data, signs and executes tx
	SignAndSubmit(ctx context.Context, tx *txb.Transaction) (*models.ExecutionResult, error)
}

// Signer signs built transaction bytes for one address.
type Signer interface {
	// Address returns the Sui address of the key
	Address() txb.Address

	// SignTransaction returns the serialized base64 signature over txBytes
	SignTransaction(txBytes []byte) (string, error)
}
