package main

import (
	"math/big"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/xugejunllt/nft-auction-market/domain"
	fee_usecase "github.com/xugejunllt/nft-auction-market/stores/fee/usecase"
)

const defaultConfigFile = "infra/configs/config.yaml"

type quoteTokenCfg struct {
	Address   string `mapstructure:"address"`
	PriceFeed string `mapstructure:"priceFeed"`
	Symbol    string `mapstructure:"symbol"`
	Decimals  uint8  `mapstructure:"decimals"`
}

type feeTierCfg struct {
	// Threshold is a base-10 amount, empty for the open-ended last tier
	Threshold string `mapstructure:"threshold"`
	Bps       int64  `mapstructure:"bps"`
}

type config struct {
	Owner                domain.Address
	RegistryAddress      domain.Address
	PlatformFeeRecipient domain.Address

	FeeTiers []domain.FeeTier

	OracleChainId   domain.ChainId
	OracleMaxAge    time.Duration
	OracleCacheTtl  time.Duration
	RpcUrls         map[int32]string
	QuoteTokens     []quoteTokenCfg
	SupportedChains []uint64

	JwtSecret    string
	SignatureMsg string
	NonceTtl     time.Duration
	TokenTtl     time.Duration

	Listen        string
	SettleWorkers int
	LogLevel      string
}

// loadConfig reads the yaml file into the global viper, flags win over the file.
// base/metrics reads env_name, app_name and datadog_host from the same instance.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (*config, error) {
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app_name", "auctiond")
	viper.SetDefault("http.listen", ":8080")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("oracle.maxPriceAge", time.Hour)
	viper.SetDefault("oracle.cacheTtl", 30*time.Second)
	viper.SetDefault("auth.nonceTtl", 10*time.Minute)
	viper.SetDefault("auth.tokenTtl", 24*time.Hour)
	viper.SetDefault("auth.signatureMsg", "Sign in to the auction market, nonce: %s")
	viper.SetDefault("settle.workers", 8)

	if flags != nil {
		for key, name := range map[string]string{
			"http.listen": "listen",
			"log.level":   "log-level",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := viper.BindPFlag(key, f); err != nil {
					return nil, xerrors.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if cfgFile == "" {
		cfgFile = defaultConfigFile
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		return nil, xerrors.Errorf("read config %s: %w", cfgFile, err)
	}

	cfg := &config{
		Owner:                domain.Address(viper.GetString("owner")).ToLower(),
		RegistryAddress:      domain.Address(viper.GetString("registryAddress")).ToLower(),
		PlatformFeeRecipient: domain.Address(viper.GetString("platformFeeRecipient")).ToLower(),
		OracleChainId:        domain.ChainId(viper.GetInt32("oracle.chainId")),
		OracleMaxAge:         viper.GetDuration("oracle.maxPriceAge"),
		OracleCacheTtl:       viper.GetDuration("oracle.cacheTtl"),
		RpcUrls:              make(map[int32]string),
		JwtSecret:            viper.GetString("jwt.secret"),
		SignatureMsg:         viper.GetString("auth.signatureMsg"),
		NonceTtl:             viper.GetDuration("auth.nonceTtl"),
		TokenTtl:             viper.GetDuration("auth.tokenTtl"),
		Listen:               viper.GetString("http.listen"),
		SettleWorkers:        viper.GetInt("settle.workers"),
		LogLevel:             viper.GetString("log.level"),
	}

	if !cfg.Owner.IsValid() {
		return nil, xerrors.Errorf("owner %q: %w", cfg.Owner, domain.ErrInvalidAddress)
	}
	if !cfg.RegistryAddress.IsValid() {
		return nil, xerrors.Errorf("registryAddress %q: %w", cfg.RegistryAddress, domain.ErrInvalidAddress)
	}
	if cfg.PlatformFeeRecipient.IsEmpty() {
		cfg.PlatformFeeRecipient = cfg.Owner
	} else if !cfg.PlatformFeeRecipient.IsValid() {
		return nil, xerrors.Errorf("platformFeeRecipient %q: %w", cfg.PlatformFeeRecipient, domain.ErrInvalidAddress)
	}
	if cfg.JwtSecret == "" {
		return nil, xerrors.Errorf("jwt.secret is required: %w", domain.ErrBadParamInput)
	}

	tiers, err := feeTiers()
	if err != nil {
		return nil, err
	}
	cfg.FeeTiers = tiers

	networks := viper.GetStringMap("networks")
	for k := range networks {
		chainId := viper.GetInt32("networks." + k + ".chainId")
		cfg.RpcUrls[chainId] = viper.GetString("networks." + k + ".rpcUrl")
	}

	if err := viper.UnmarshalKey("quoteTokens", &cfg.QuoteTokens); err != nil {
		return nil, xerrors.Errorf("quoteTokens: %w", err)
	}
	if err := viper.UnmarshalKey("crosschain.supportedChains", &cfg.SupportedChains); err != nil {
		return nil, xerrors.Errorf("crosschain.supportedChains: %w", err)
	}

	return cfg, nil
}

// feeTiers falls back to the default schedule when fee.tiers is absent
func feeTiers() ([]domain.FeeTier, error) {
	raw := []feeTierCfg{}
	if err := viper.UnmarshalKey("fee.tiers", &raw); err != nil {
		return nil, xerrors.Errorf("fee.tiers: %w", err)
	}
	if len(raw) == 0 {
		return fee_usecase.DefaultTiers(), nil
	}

	tiers := make([]domain.FeeTier, 0, len(raw))
	for i, t := range raw {
		var threshold *big.Int
		if t.Threshold != "" {
			v, err := domain.ParseAmount(t.Threshold)
			if err != nil {
				return nil, xerrors.Errorf("fee.tiers[%d].threshold: %w", i, err)
			}
			threshold = v
		}
		tiers = append(tiers, domain.FeeTier{Threshold: threshold, Bps: t.Bps})
	}
	return tiers, nil
}
