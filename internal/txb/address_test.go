package txb

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OKaluzny/sui-tips/internal/bcs"
	"github.com/OKaluzny/sui-tips/pkg/models"
)

func TestParseAddress(t *testing.T) {
	full := "0x" + strings.Repeat("0", 63) + "2"
	tests := []struct {
		in   string
		want string
	}{
		{"0x2", full},
		{"2", full},
		{"0X02", full},
		{full, full},
		{"  0x2  ", full},
		{"0x" + strings.Repeat("ab", 32), "0x" + strings.Repeat("ab", 32)},
	}
	for _, tt := range tests {
		a, err := ParseAddress(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, a.String())
	}
}

func TestParseAddress_Invalid(t *testing.T) {
	for _, in := range []string{"", "0x", "0xzz", "hello", "0x" + strings.Repeat("a", 65)} {
		_, err := ParseAddress(in)
		assert.ErrorIs(t, err, ErrInvalidAddress, in)
	}
}

func TestParseObjectRef(t *testing.T) {
	digest := base58.Encode(make([]byte, 32))
	ref, err := ParseObjectRef("0x5", 42, digest)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), ref.Version)
	assert.Equal(t, MustParseAddress("0x5"), ref.ID)

	_, err = ParseObjectRef("0x5", 1, base58.Encode([]byte{1, 2, 3}))
	assert.Error(t, err)
	_, err = ParseObjectRef("nope", 1, digest)
	assert.Error(t, err)
}

func TestObjectRef_MarshalBCS(t *testing.T) {
	ref := ObjectRef{ID: MustParseAddress("0x1"), Version: 2}
	got := bcs.Marshal(ref)
	assert.Len(t, got, 32+8+1+32)
	assert.Equal(t, byte(0x20), got[40])
}

func TestParseTypeTag(t *testing.T) {
	sui := "0x" + strings.Repeat("0", 63) + "2::sui::SUI"
	tests := []struct {
		in   string
		want string
	}{
		{"u64", "u64"},
		{"vector<u8>", "vector<u8>"},
		{"vector<vector<address>>", "vector<vector<address>>"},
		{models.SuiCoinType, sui},
		{"0x2::coin::Coin<0x2::sui::SUI>", "0x" + strings.Repeat("0", 63) + "2::coin::Coin<" + sui + ">"},
		{"0x1::pair::Pair<u8, bool>", "0x" + strings.Repeat("0", 63) + "1::pair::Pair<u8, bool>"},
	}
	for _, tt := range tests {
		tag, err := ParseTypeTag(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, tag.String())
	}
}

func TestParseTypeTag_Invalid(t *testing.T) {
	for _, in := range []string{"", "vector", "vector<u8", "0x2::sui", "0x2::sui::SUI<", "0x2::sui::SUI<u8,>", "u64>", "0xg::a::B"} {
		_, err := ParseTypeTag(in)
		assert.Error(t, err, in)
	}
}

func TestTypeTag_MarshalBCS(t *testing.T) {
	tag, err := ParseTypeTag("vector<u8>")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x06, 0x01}, bcs.Marshal(tag))

	tag, err = ParseTypeTag("0x2::sui::SUI")
	require.NoError(t, err)
	got := bcs.Marshal(tag)
	assert.Equal(t, byte(0x07), got[0])
	assert.Equal(t, byte(0x02), got[32])
	assert.Equal(t, []byte{0x03, 's', 'u', 'i', 0x03, 'S', 'U', 'I', 0x00}, got[33:])
}

func TestSameType(t *testing.T) {
	assert.True(t, SameType("0x2::sui::SUI", "0x0000000000000000000000000000000000000000000000000000000000000002::sui::SUI"))
	assert.False(t, SameType("0x2::sui::SUI", "0x3::sui::SUI"))
	assert.False(t, SameType("garbage", "garbage"))
}

func TestSelectCoins(t *testing.T) {
	coins := []models.Coin{
		{ObjectID: "0x1", Balance: 10},
		{ObjectID: "0x2", Balance: 50},
		{ObjectID: "0x3", Balance: 30},
	}

	got, err := SelectCoins(coins, 60)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0x2", got[0].ObjectID)
	assert.Equal(t, "0x3", got[1].ObjectID)

	got, err = SelectCoins(coins, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = SelectCoins(coins, 91)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	_, err = SelectCoins(nil, 1)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}
