package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OKaluzny/sui-tips/internal/wallet"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--env-file", ""}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestFeeCmd(t *testing.T) {
	out, err := run(t, "fee", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Fee:   0.015 SUI (1.5%)")
	assert.Contains(t, out, "Total: 1.015 SUI")
}

func TestFeeCmd_JSON(t *testing.T) {
	out, err := run(t, "--json", "fee", "2.5", "--token", "usdc")
	require.NoError(t, err)

	var got struct {
		Breakdown struct {
			Tip   uint64 `json:"tip"`
			Fee   uint64 `json:"fee"`
			Total uint64 `json:"total"`
		} `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, uint64(2_500_000), got.Breakdown.Tip)
	assert.Equal(t, uint64(37_500), got.Breakdown.Fee)
	assert.Equal(t, uint64(2_537_500), got.Breakdown.Total)
}

func TestFeeCmd_InvalidAmount(t *testing.T) {
	_, err := run(t, "fee", "abc")
	assert.Error(t, err)

	_, err = run(t, "fee", "1", "--token", "doge")
	assert.Error(t, err)
}

func TestAccountCmd(t *testing.T) {
	t.Setenv("SUI_MNEMONIC", testMnemonic)

	ks, err := wallet.NewKeystore(testMnemonic)
	require.NoError(t, err)
	s, err := ks.Derive(0, 0)
	require.NoError(t, err)

	out, err := run(t, "account")
	require.NoError(t, err)
	assert.Contains(t, out, s.Address().String())
	assert.Contains(t, out, "m/54'/784'/0'/0/0")
}

func TestAccountCmd_NoMnemonic(t *testing.T) {
	t.Setenv("SUI_MNEMONIC", "")
	_, err := run(t, "account")
	assert.Error(t, err)
}

func TestAccountNewCmd(t *testing.T) {
	out, err := run(t, "--json", "account", "new")
	require.NoError(t, err)

	var info accountInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Len(t, strings.Fields(info.Mnemonic), 12)
	assert.True(t, strings.HasPrefix(info.Address, "0x"))
}

func TestSendCmd_ValidationFailure(t *testing.T) {
	t.Setenv("SUI_MNEMONIC", testMnemonic)
	t.Setenv("FEE_RECEIVER", "0xfee")

	_, err := run(t, "send", "--amount", "1")
	require.Error(t, err)
	assert.Equal(t, "Enter recipient address", err.Error())
}

func TestFeedCmd(t *testing.T) {
	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     uint64 `json:"id"`
			Method string `json:"method"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result": map[string]any{
				"data": []map[string]any{
					{
						"id":          map[string]any{"txDigest": "D1", "eventSeq": "0"},
						"parsedJson":  map[string]any{"amount": "1000000000", "message": "older", "timestamp": "1000"},
						"timestampMs": "1000",
					},
					{
						"id":          map[string]any{"txDigest": "D2", "eventSeq": "0"},
						"parsedJson":  map[string]any{"amount": "2500000000", "message": "newer", "timestamp": "2000"},
						"timestampMs": "2000",
					},
				},
				"hasNextPage": false,
			},
		})
	}))
	defer node.Close()
	t.Setenv("SUI_RPC_URL", node.URL)

	out, err := run(t, "feed")
	require.NoError(t, err)
	assert.Contains(t, out, "2.5 SUI")
	assert.Less(t, strings.Index(out, "newer"), strings.Index(out, "older"), "feed should list newest first")
}
