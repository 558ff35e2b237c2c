package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/OKaluzny/sui-tips/internal/rpc"
	"github.com/OKaluzny/sui-tips/internal/txb"
	"github.com/OKaluzny/sui-tips/pkg/models"
)

var (
	_ Session = (*KeystoreSession)(nil)
	_ Signer  = (*Secp256k1Signer)(nil)
)

// maxGasObjects is the protocol limit on gas payment coins.
const maxGasObjects = 256

// ErrNotConnected is returned by SignAndSubmit before Connect.
var ErrNotConnected = errors.New("wallet not connected")

// ExecutionError reports a transaction the chain executed but aborted.
type ExecutionError struct {
	Digest  string
	Message string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %s", e.Digest, e.Message)
}

// Chain is the subset of the read client a session needs.
type Chain interface {
	ListCoins(ctx context.Context, owner, coinType string) ([]models.Coin, error)
	ReferenceGasPrice(ctx context.Context) (uint64, error)
	ExecuteTransactionBlock(ctx context.Context, txBytes []byte, signatures []string) (*rpc.TransactionResponse, error)
}

// SessionConfig holds the account selection and gas settings.
type SessionConfig struct {
	Account   uint32
	Index     uint32
	GasBudget uint64
}

// KeystoreSession is a Session backed by a local mnemonic.
type KeystoreSession struct {
	keystore *Keystore
	chain    Chain
	cfg      SessionConfig
	logger   *slog.Logger

	mu     sync.RWMutex
	signer *Secp256k1Signer
}

// NewKeystoreSession returns a disconnected session.
func NewKeystoreSession(ks *Keystore, chain Chain, cfg SessionConfig) *KeystoreSession {
	if cfg.GasBudget == 0 {
		cfg.GasBudget = 10_000_000
	}
	return &KeystoreSession{
		keystore: ks,
		chain:    chain,
		cfg:      cfg,
		logger:   slog.Default().With("component", "wallet_session"),
	}
}

func (s *KeystoreSession) Connect(ctx context.Context) (models.Account, error) {
	signer, err := s.keystore.Derive(s.cfg.Account, s.cfg.Index)
	if err != nil {
		return models.Account{}, err
	}

	s.mu.Lock()
	s.signer = signer
	s.mu.Unlock()

	acct := accountOf(signer)
	s.logger.Info("wallet connected", "address", acct.Address, "path", signer.Path())
	return acct, nil
}

func (s *KeystoreSession) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signer != nil {
		s.logger.Info("wallet disconnected", "address", s.signer.Address().String())
	}
	s.signer = nil
	return nil
}

func (s *KeystoreSession) CurrentAccount() (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.signer == nil {
		return models.Account{}, false
	}
	return accountOf(s.signer), true
}

// SignAndSubmit selects gas coins, builds, signs and executes tx.
func (s *KeystoreSession) SignAndSubmit(ctx context.Context, tx *txb.Transaction) (*models.ExecutionResult, error) {
	s.mu.RLock()
	signer := s.signer
	s.mu.RUnlock()
	if signer == nil {
		return nil, ErrNotConnected
	}
	sender := signer.Address()

	price, err := s.chain.ReferenceGasPrice(ctx)
	if err != nil {
		return nil, err
	}

	gasCoins, err := s.chain.ListCoins(ctx, sender.String(), models.SuiCoinType)
	if err != nil {
		return nil, err
	}
	need := s.cfg.GasBudget
	if demand := tx.GasDemand(); demand > math.MaxUint64-need {
		need = math.MaxUint64
	} else {
		need += demand
	}
	selected, err := txb.SelectCoins(gasCoins, need)
	if err != nil {
		return nil, errors.Wrap(err, "gas payment")
	}
	if len(selected) > maxGasObjects {
		return nil, errors.Errorf("gas payment needs %d coins, limit is %d", len(selected), maxGasObjects)
	}
	payment, err := txb.CoinRefs(selected)
	if err != nil {
		return nil, errors.Wrap(err, "gas payment")
	}

	txBytes, err := tx.Build(sender, txb.GasData{
		Payment: payment,
		Owner:   sender,
		Price:   price,
		Budget:  s.cfg.GasBudget,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build transaction")
	}
	localDigest := txb.Digest(txBytes)

	sig, err := signer.SignTransaction(txBytes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("submitting transaction",
		"sender", sender.String(),
		"digest", localDigest,
		"gas_price", price,
		"gas_budget", s.cfg.GasBudget,
		"gas_coins", len(payment),
	)

	resp, err := s.chain.ExecuteTransactionBlock(ctx, txBytes, []string{sig})
	if err != nil {
		return nil, err
	}

	digest := resp.Digest
	if digest == "" {
		digest = localDigest
	} else if digest != localDigest {
		s.logger.Warn("node digest differs from local digest", "node", digest, "local", localDigest)
	}

	result := &models.ExecutionResult{Digest: digest, Status: rpc.StatusSuccess}
	if resp.Effects != nil {
		result.Status = resp.Effects.Status.Status
		result.GasUsed = resp.Effects.GasUsed.Net()
		if result.Status != rpc.StatusSuccess {
			return nil, &ExecutionError{Digest: digest, Message: resp.Effects.Status.Error}
		}
	}

	s.logger.Info("transaction executed", "digest", digest, "gas_used", result.GasUsed)
	return result, nil
}

func accountOf(s *Secp256k1Signer) models.Account {
	return models.Account{
		Address:   s.Address().String(),
		PublicKey: s.SuiPublicKey(),
		Scheme:    "secp256k1",
	}
}
