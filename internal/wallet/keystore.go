package wallet

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

// Sui derives secp256k1 keys on m/54'/784'/{account}'/0/{index}.
const (
	secp256k1Purpose = 54
	suiCoinType      = 784
)

// ErrInvalidMnemonic is returned for phrases that fail the BIP-39 checksum.
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// NewMnemonic generates a fresh 12-word BIP-39 phrase.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", errors.Wrap(err, "entropy")
	}
	m, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "mnemonic")
	}
	return m, nil
}

// Keystore holds the seed of one mnemonic.
type Keystore struct {
	seed []byte
}

// NewKeystore validates mnemonic and derives its seed (empty passphrase).
func NewKeystore(mnemonic string) (*Keystore, error) {
	m := strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(m) {
		return nil, ErrInvalidMnemonic
	}
	return &Keystore{seed: bip39.NewSeed(m, "")}, nil
}

// DerivationPath returns the path used for account/index.
func DerivationPath(account, index uint32) string {
	return fmt.Sprintf("m/%d'/%d'/%d'/0/%d", secp256k1Purpose, suiCoinType, account, index)
}

// Derive returns the signer for account/index.
func (k *Keystore) Derive(account, index uint32) (*Secp256k1Signer, error) {
	key, err := deriveKey(k.seed, account, index)
	if err != nil {
		return nil, errors.Wrap(err, "derive key")
	}
	return NewSecp256k1Signer(key, DerivationPath(account, index)), nil
}

// deriveKey derives a child private key from a BIP-39 seed using BIP-32.
// Path: m/54'/784'/{account}'/0/{index}
func deriveKey(seed []byte, account uint32, index uint32) ([]byte, error) {
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("master key: %w", err)
	}

	// m/54'
	purpose, err := masterKey.NewChildKey(bip32.FirstHardenedChild + secp256k1Purpose)
	if err != nil {
		return nil, fmt.Errorf("derive purpose: %w", err)
	}

	// m/54'/784'
	coin, err := purpose.NewChildKey(bip32.FirstHardenedChild + suiCoinType)
	if err != nil {
		return nil, fmt.Errorf("derive coin: %w", err)
	}

	// m/54'/784'/{account}'
	acct, err := coin.NewChildKey(bip32.FirstHardenedChild + account)
	if err != nil {
		return nil, fmt.Errorf("derive account: %w", err)
	}

	// m/54'/784'/{account}'/0
	change, err := acct.NewChildKey(0)
	if err != nil {
		return nil, fmt.Errorf("derive change: %w", err)
	}

	// m/54'/784'/{account}'/0/{index}
	child, err := change.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child: %w", err)
	}

	return child.Key, nil
}
