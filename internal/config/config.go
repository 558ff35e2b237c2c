package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/OKaluzny/sui-tips/pkg/models"
)

// Build-time network endpoint and deployed contract identifiers.
const (
	DefaultRPCURL         = "https://fullnode.testnet.sui.io:443"
	DefaultPackageID      = "0xc6b941e27864245770d39a95305211836dbf86ce7be65c47d75ce23b32e88103"
	DefaultStableCoinType = "0x5d4b302506645c37ff133b98c4b50a5ae14841659738d6d733d59d0d217a93bf::coin::COIN"
)

// Config holds all configurable parameters for the tip client.
type Config struct {
	// Read client
	RPCURL     string
	RPCTimeout time.Duration

	// Deployed tipping package and the stable coin it accepts
	PackageID      string
	StableCoinType string
	StableDecimals int32

	// Platform fee receiver; the sender pays the fee on top of the tip
	FeeReceiver string

	// Feed poller
	FeedPollInterval time.Duration
	FeedLimit        int

	// Transaction gas budget in MIST
	GasBudget uint64

	// Keystore wallet session
	Mnemonic     string
	AccountIndex uint32
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		RPCURL:     DefaultRPCURL,
		RPCTimeout: 30 * time.Second,

		PackageID:      DefaultPackageID,
		StableCoinType: DefaultStableCoinType,
		StableDecimals: 6,

		FeedPollInterval: 15 * time.Second,
		FeedLimit:        50,

		GasBudget: 10_000_000, // 0.01 SUI
	}
}

// FromEnv returns a Config populated from environment variables,
// falling back to defaults for unset or malformed values.
func FromEnv() Config {
	return fromViper(newViper())
}

// Load reads a YAML config file and lets environment variables override it.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	return fromViper(v), nil
}

// Tokens returns the coins the client can tip with.
func (c Config) Tokens() models.TokenSet {
	return models.TokenSet{
		models.TokenNative: {
			Kind:     models.TokenNative,
			Symbol:   "SUI",
			CoinType: models.SuiCoinType,
			Decimals: 9,
		},
		models.TokenStable: {
			Kind:     models.TokenStable,
			Symbol:   "USDC",
			CoinType: c.StableCoinType,
			Decimals: c.StableDecimals,
		},
	}
}

// TipTarget is the Move entry point a tip calls.
func (c Config) TipTarget() string {
	return c.PackageID + "::tipping::tip"
}

// TipEventType is the Move event type emitted by the tipping module.
func (c Config) TipEventType() string {
	return c.PackageID + "::tipping::TipEvent"
}

func newViper() *viper.Viper {
	d := Default()
	v := viper.New()
	v.SetDefault("sui_rpc_url", d.RPCURL)
	v.SetDefault("rpc_timeout", d.RPCTimeout)
	v.SetDefault("tips_package_id", d.PackageID)
	v.SetDefault("stable_coin_type", d.StableCoinType)
	v.SetDefault("stable_coin_decimals", d.StableDecimals)
	v.SetDefault("fee_receiver", d.FeeReceiver)
	v.SetDefault("feed_poll_interval", d.FeedPollInterval)
	v.SetDefault("feed_limit", d.FeedLimit)
	v.SetDefault("gas_budget", d.GasBudget)
	v.SetDefault("sui_mnemonic", "")
	v.SetDefault("account_index", 0)
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) Config {
	cfg := Default()

	if s := strings.TrimSpace(v.GetString("sui_rpc_url")); s != "" {
		cfg.RPCURL = s
	}
	if d := v.GetDuration("rpc_timeout"); d > 0 {
		cfg.RPCTimeout = d
	}
	if s := strings.TrimSpace(v.GetString("tips_package_id")); s != "" {
		cfg.PackageID = s
	}
	if s := strings.TrimSpace(v.GetString("stable_coin_type")); s != "" {
		cfg.StableCoinType = s
	}
	if n := v.GetInt32("stable_coin_decimals"); n > 0 {
		cfg.StableDecimals = n
	}
	cfg.FeeReceiver = strings.TrimSpace(v.GetString("fee_receiver"))
	if d := v.GetDuration("feed_poll_interval"); d > 0 {
		cfg.FeedPollInterval = d
	}
	if n := v.GetInt("feed_limit"); n > 0 {
		cfg.FeedLimit = n
	}
	if n := v.GetUint64("gas_budget"); n > 0 {
		cfg.GasBudget = n
	}
	cfg.Mnemonic = strings.TrimSpace(v.GetString("sui_mnemonic"))
	cfg.AccountIndex = v.GetUint32("account_index")

	return cfg
}
