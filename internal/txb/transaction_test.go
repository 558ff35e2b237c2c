package txb

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OKaluzny/sui-tips/pkg/models"
)

func u64le(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, v)
}

func testRef(t *testing.T, id string, version uint64, fill byte) ObjectRef {
	t.Helper()
	ref, err := ParseObjectRef(id, version, base58.Encode(bytes.Repeat([]byte{fill}, DigestLength)))
	require.NoError(t, err)
	return ref
}

func TestBuild_SplitAndTransfer(t *testing.T) {
	sender := MustParseAddress("0x1")
	recipient := MustParseAddress("0x2")
	gasRef := testRef(t, "0x3", 7, 0x09)

	tx := New()
	amt := tx.PureU64(5)
	coins := tx.SplitCoins(tx.Gas(), amt)
	tx.TransferObjects(coins, tx.PureAddress(recipient))

	got, err := tx.Build(sender, GasData{Payment: []ObjectRef{gasRef}, Price: 1000, Budget: 2000})
	require.NoError(t, err)

	var want []byte
	want = append(want, 0x00, 0x00) // V1, ProgrammableTransaction
	want = append(want, 0x02)       // inputs
	want = append(want, 0x00, 0x08)
	want = append(want, u64le(5)...)
	want = append(want, 0x00, 0x20)
	want = append(want, recipient[:]...)
	want = append(want, 0x02)                               // commands
	want = append(want, 0x02, 0x00, 0x01, 0x01, 0x00, 0x00) // SplitCoins(GasCoin, [Input(0)])
	want = append(want, 0x01, 0x01, 0x03, 0x00, 0x00, 0x00, 0x00, 0x01, 0x01, 0x00)
	want = append(want, sender[:]...)
	want = append(want, 0x01) // payment
	want = append(want, gasRef.ID[:]...)
	want = append(want, u64le(7)...)
	want = append(want, 0x20)
	want = append(want, bytes.Repeat([]byte{0x09}, 32)...)
	want = append(want, sender[:]...) // owner defaults to sender
	want = append(want, u64le(1000)...)
	want = append(want, u64le(2000)...)
	want = append(want, 0x00) // no expiration

	assert.Equal(t, want, got)
}

func TestBuild_MoveCall(t *testing.T) {
	sender := MustParseAddress("0xa11ce")
	tx := New()
	split := tx.SplitCoins(tx.Gas(), tx.PureU64(100), tx.PureU64(1))
	_, err := tx.MoveCall("0x5::tipping::tip", []string{models.SuiCoinType},
		split[0], split[1], tx.PureAddress(MustParseAddress("0xb0b")), tx.PureString("gm"))
	require.NoError(t, err)

	got, err := tx.Build(sender, GasData{Payment: []ObjectRef{testRef(t, "0x99", 1, 1)}, Price: 750, Budget: 10_000_000})
	require.NoError(t, err)

	// move call command begins with variant 0 followed by the package id
	pkg := MustParseAddress("0x5")
	marker := append([]byte{0x00}, pkg[:]...)
	marker = append(marker, 0x07)
	marker = append(marker, "tipping"...)
	marker = append(marker, 0x03)
	marker = append(marker, "tip"...)
	marker = append(marker, 0x01, 0x07) // one type arg, Struct
	assert.True(t, bytes.Contains(got, marker), "move call encoding not found")

	assert.Equal(t, uint64(101), tx.GasDemand())
}

func TestBuild_Errors(t *testing.T) {
	sender := MustParseAddress("0x1")
	gas := GasData{Payment: []ObjectRef{testRef(t, "0x3", 1, 2)}, Price: 1, Budget: 1}

	_, err := New().Build(sender, gas)
	assert.ErrorIs(t, err, ErrNoCommands)

	tx := New()
	tx.SplitCoins(tx.Gas(), tx.PureU64(1))
	_, err = tx.Build(sender, GasData{Price: 1, Budget: 1})
	assert.ErrorIs(t, err, ErrNoGasPayment)

	_, err = tx.Build(sender, GasData{Payment: gas.Payment, Price: 1})
	assert.Error(t, err)

	tx = New()
	coin := tx.Object(gas.Payment[0])
	tx.SplitCoins(coin, tx.PureU64(1))
	_, err = tx.Build(sender, gas)
	assert.ErrorIs(t, err, ErrGasInInputs)
}

func TestObject_Deduplicated(t *testing.T) {
	tx := New()
	ref := testRef(t, "0x44", 3, 4)
	a := tx.Object(ref)
	b := tx.Object(ref)
	assert.Equal(t, a, b)
	assert.Len(t, tx.inputs, 1)
}

func TestMoveCall_InvalidTarget(t *testing.T) {
	tx := New()
	for _, target := range []string{"tip", "0x2::tipping", "zz::tipping::tip", "0x2::tip ping::tip", "0x2::tipping::1tip"} {
		_, err := tx.MoveCall(target, nil)
		assert.Error(t, err, target)
	}
	_, err := tx.MoveCall("0x2::tipping::tip", []string{"0x2::sui"})
	assert.Error(t, err)
}

func TestGasDemand_IgnoresOtherCoins(t *testing.T) {
	tx := New()
	coin := tx.Object(testRef(t, "0x7", 1, 1))
	tx.SplitCoins(coin, tx.PureU64(500))
	tx.SplitCoins(tx.Gas(), tx.PureU64(20), tx.PureU64(3))
	assert.Equal(t, uint64(23), tx.GasDemand())
}

func TestDigest_Deterministic(t *testing.T) {
	data := []byte{1, 2, 3}
	d1 := Digest(data)
	d2 := Digest(data)
	assert.Equal(t, d1, d2)
	assert.Len(t, base58.Decode(d1), 32)
	assert.NotEqual(t, d1, Digest([]byte{1, 2, 4}))
}
