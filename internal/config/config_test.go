package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OKaluzny/sui-tips/pkg/models"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.FeedPollInterval != 15*time.Second {
		t.Errorf("FeedPollInterval = %v, want 15s", cfg.FeedPollInterval)
	}
	if cfg.FeedLimit != 50 {
		t.Errorf("FeedLimit = %d, want 50", cfg.FeedLimit)
	}
	if cfg.RPCURL != DefaultRPCURL {
		t.Errorf("RPCURL = %s", cfg.RPCURL)
	}
	if cfg.FeeReceiver != "" {
		t.Errorf("FeeReceiver should be empty by default, got %s", cfg.FeeReceiver)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SUI_RPC_URL", "http://localhost:9000")
	t.Setenv("FEED_POLL_INTERVAL", "2s")
	t.Setenv("FEED_LIMIT", "10")
	t.Setenv("GAS_BUDGET", "5000000")
	t.Setenv("FEE_RECEIVER", "0xfee")
	t.Setenv("ACCOUNT_INDEX", "3")

	cfg := FromEnv()

	if cfg.RPCURL != "http://localhost:9000" {
		t.Errorf("RPCURL = %s", cfg.RPCURL)
	}
	if cfg.FeedPollInterval != 2*time.Second {
		t.Errorf("FeedPollInterval = %v", cfg.FeedPollInterval)
	}
	if cfg.FeedLimit != 10 {
		t.Errorf("FeedLimit = %d", cfg.FeedLimit)
	}
	if cfg.GasBudget != 5_000_000 {
		t.Errorf("GasBudget = %d", cfg.GasBudget)
	}
	if cfg.FeeReceiver != "0xfee" {
		t.Errorf("FeeReceiver = %s", cfg.FeeReceiver)
	}
	if cfg.AccountIndex != 3 {
		t.Errorf("AccountIndex = %d", cfg.AccountIndex)
	}
}

func TestFromEnv_MalformedFallsBack(t *testing.T) {
	t.Setenv("FEED_POLL_INTERVAL", "soon")
	t.Setenv("FEED_LIMIT", "-4")

	cfg := FromEnv()

	if cfg.FeedPollInterval != Default().FeedPollInterval {
		t.Errorf("FeedPollInterval = %v, want default", cfg.FeedPollInterval)
	}
	if cfg.FeedLimit != Default().FeedLimit {
		t.Errorf("FeedLimit = %d, want default", cfg.FeedLimit)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("tips_package_id: \"0xabc\"\nfeed_limit: 5\nfee_receiver: \"0xfee\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FEED_LIMIT", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PackageID != "0xabc" {
		t.Errorf("PackageID = %s", cfg.PackageID)
	}
	if cfg.FeedLimit != 7 {
		t.Errorf("env should override file: FeedLimit = %d", cfg.FeedLimit)
	}
	if cfg.TipTarget() != "0xabc::tipping::tip" {
		t.Errorf("TipTarget = %s", cfg.TipTarget())
	}
	if cfg.TipEventType() != "0xabc::tipping::TipEvent" {
		t.Errorf("TipEventType = %s", cfg.TipEventType())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTokens(t *testing.T) {
	cfg := Default()
	tokens := cfg.Tokens()

	native := tokens[models.TokenNative]
	if native.CoinType != models.SuiCoinType || native.Decimals != 9 {
		t.Errorf("native token = %+v", native)
	}
	stable := tokens[models.TokenStable]
	if stable.CoinType != DefaultStableCoinType || stable.Decimals != 6 {
		t.Errorf("stable token = %+v", stable)
	}
	if tok, ok := tokens.ByCoinType(DefaultStableCoinType); !ok || tok.Kind != models.TokenStable {
		t.Errorf("ByCoinType(stable) = %+v, %v", tok, ok)
	}
}
