package txb

import (
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/pkg/errors"

	"github.com/OKaluzny/sui-tips/internal/bcs"
)

// AddressLength is the size of a Sui address or object id.
const AddressLength = 32

// DigestLength is the size of an object or transaction digest.
const DigestLength = 32

// ErrInvalidAddress is returned for strings that are not a Sui address.
var ErrInvalidAddress = errors.New("invalid address")

// Address is a Sui account address or object id.
type Address [AddressLength]byte

// ParseAddress accepts 0x-prefixed or bare hex. Short forms such as "0x2" are
// left-padded with zeros.
func ParseAddress(s string) (Address, error) {
	var a Address
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if h == "" || len(h) > 2*AddressLength {
		return a, errors.Wrapf(ErrInvalidAddress, "%q", s)
	}
	if len(h)%2 == 1 {
		h = "0" + h
	}
	raw, err := hex.DecodeString(h)
	if err != nil {
		return a, errors.Wrapf(ErrInvalidAddress, "%q", s)
	}
	copy(a[AddressLength-len(raw):], raw)
	return a, nil
}

// MustParseAddress is ParseAddress for constants.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the full-length 0x-prefixed hex form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalBCS encodes a as a fixed 32-byte array.
func (a Address) MarshalBCS(e *bcs.Encoder) {
	e.Fixed(a[:])
}

// ObjectRef pins an owned object at a version.
type ObjectRef struct {
	ID      Address
	Version uint64
	Digest  [DigestLength]byte
}

// ParseObjectRef builds a reference from the id, version and base58 digest
// returned by the read client.
func ParseObjectRef(id string, version uint64, digest string) (ObjectRef, error) {
	var ref ObjectRef
	addr, err := ParseAddress(id)
	if err != nil {
		return ref, errors.Wrap(err, "object id")
	}
	raw := base58.Decode(digest)
	if len(raw) != DigestLength {
		return ref, errors.Errorf("object digest %q: want %d bytes, got %d", digest, DigestLength, len(raw))
	}
	ref.ID = addr
	ref.Version = version
	copy(ref.Digest[:], raw)
	return ref, nil
}

// MarshalBCS encodes the (ObjectID, SequenceNumber, ObjectDigest) triple.
func (r ObjectRef) MarshalBCS(e *bcs.Encoder) {
	r.ID.MarshalBCS(e)
	e.U64(r.Version)
	e.ByteVector(r.Digest[:])
}
