package wallet

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/OKaluzny/sui-tips/internal/txb"
)

// SchemeSecp256k1 is the signature scheme flag byte for secp256k1 keys.
const SchemeSecp256k1 byte = 0x01

// transactionIntent prefixes transaction bytes before hashing:
// scope TransactionData, version V0, app Sui.
var transactionIntent = [3]byte{0, 0, 0}

// Secp256k1Signer signs Sui transactions with a secp256k1 key.
type Secp256k1Signer struct {
	priv    *btcec.PrivateKey
	pub     *btcec.PublicKey
	address txb.Address
	path    string
}

// NewSecp256k1Signer wraps a raw 32-byte private key.
func NewSecp256k1Signer(key []byte, path string) *Secp256k1Signer {
	priv, pub := btcec.PrivKeyFromBytes(key)
	return &Secp256k1Signer{
		priv:    priv,
		pub:     pub,
		address: AddressFromPublicKey(pub.SerializeCompressed()),
		path:    path,
	}
}

// AddressFromPublicKey derives the Sui address of a compressed secp256k1
// public key: blake2b-256(flag || pubkey).
func AddressFromPublicKey(compressed []byte) txb.Address {
	data := make([]byte, 0, 1+len(compressed))
	data = append(data, SchemeSecp256k1)
	data = append(data, compressed...)
	return txb.Address(blake2b.Sum256(data))
}

func (s *Secp256k1Signer) Address() txb.Address {
	return s.address
}

// Path returns the derivation path the key came from.
func (s *Secp256k1Signer) Path() string {
	return s.path
}

// PublicKey returns the 33-byte compressed public key.
func (s *Secp256k1Signer) PublicKey() []byte {
	return s.pub.SerializeCompressed()
}

// SuiPublicKey returns base64(flag || pubkey), the form wallets display.
func (s *Secp256k1Signer) SuiPublicKey() string {
	return base64.StdEncoding.EncodeToString(append([]byte{SchemeSecp256k1}, s.PublicKey()...))
}

// IntentDigest hashes txBytes under the transaction intent.
func IntentDigest(txBytes []byte) [32]byte {
	msg := make([]byte, 0, len(transactionIntent)+len(txBytes))
	msg = append(msg, transactionIntent[:]...)
	msg = append(msg, txBytes...)
	return blake2b.Sum256(msg)
}

// SignTransaction signs the intent digest of txBytes and returns the
// serialized signature base64(flag || r || s || pubkey).
func (s *Secp256k1Signer) SignTransaction(txBytes []byte) (string, error) {
	digest := IntentDigest(txBytes)
	hash := sha256.Sum256(digest[:])

	// compact form is [recovery id | r | s] with s normalized to the low half
	compact, err := ecdsa.SignCompact(s.priv, hash[:], true)
	if err != nil {
		return "", errors.Wrap(err, "sign")
	}
	if len(compact) != 65 {
		return "", errors.Errorf("unexpected signature length %d", len(compact))
	}

	out := make([]byte, 0, 1+64+33)
	out = append(out, SchemeSecp256k1)
	out = append(out, compact[1:]...)
	out = append(out, s.PublicKey()...)
	return base64.StdEncoding.EncodeToString(out), nil
}
