package main

import (
	"fmt"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/xugejunllt/nft-auction-market/base/ctx"
	"github.com/xugejunllt/nft-auction-market/base/goroutine"
	"github.com/xugejunllt/nft-auction-market/base/log"
	bValidator "github.com/xugejunllt/nft-auction-market/base/validator"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/keys"
	mmiddleware "github.com/xugejunllt/nft-auction-market/middleware"
	"github.com/xugejunllt/nft-auction-market/service/cache"
	"github.com/xugejunllt/nft-auction-market/service/cache/provider/primitive"
	"github.com/xugejunllt/nft-auction-market/service/chain"
	chainlink_service "github.com/xugejunllt/nft-auction-market/service/chainlink"
	"github.com/xugejunllt/nft-auction-market/service/eventlog"
	"github.com/xugejunllt/nft-auction-market/service/ledger"
	auction_delivery "github.com/xugejunllt/nft-auction-market/stores/auction/delivery/http"
	auction_repository "github.com/xugejunllt/nft-auction-market/stores/auction/repository"
	auction_usecase "github.com/xugejunllt/nft-auction-market/stores/auction/usecase"
	auth_delivery "github.com/xugejunllt/nft-auction-market/stores/auth/delivery/http"
	auth_middleware "github.com/xugejunllt/nft-auction-market/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/xugejunllt/nft-auction-market/stores/auth/usecase"
	chainlink_usecase "github.com/xugejunllt/nft-auction-market/stores/chainlink/usecase"
	crosschain_delivery "github.com/xugejunllt/nft-auction-market/stores/crosschain/delivery/http"
	crosschain_usecase "github.com/xugejunllt/nft-auction-market/stores/crosschain/usecase"
	fee_delivery "github.com/xugejunllt/nft-auction-market/stores/fee/delivery/http"
	fee_usecase "github.com/xugejunllt/nft-auction-market/stores/fee/usecase"
	hc_delivery "github.com/xugejunllt/nft-auction-market/stores/healthcheck/delivery/http"
	hc_repo "github.com/xugejunllt/nft-auction-market/stores/healthcheck/repository"
	hc_usecase "github.com/xugejunllt/nft-auction-market/stores/healthcheck/usecase"
	ledger_delivery "github.com/xugejunllt/nft-auction-market/stores/ledger/delivery/http"
	paytoken_delivery "github.com/xugejunllt/nft-auction-market/stores/paytoken/delivery/http"
	paytoken_repository "github.com/xugejunllt/nft-auction-market/stores/paytoken/repository"
	paytoken_usecase "github.com/xugejunllt/nft-auction-market/stores/paytoken/usecase"
	registry_delivery "github.com/xugejunllt/nft-auction-market/stores/registry/delivery/http"
	registry_usecase "github.com/xugejunllt/nft-auction-market/stores/registry/usecase"
)

func main() {
	root := &cobra.Command{
		Use:          "auctiond",
		Short:        "NFT auction market",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path (default "+defaultConfigFile+")")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the auction market HTTP API",
		RunE:  runServe,
	}
	serveCmd.Flags().String("listen", "", "http listen address, e.g. :8080")
	root.AddCommand(serveCmd)

	feeCmd := &cobra.Command{
		Use:   "fee",
		Short: "Print the platform fee of an amount under the configured schedule",
		RunE:  runFee,
	}
	feeCmd.Flags().String("amount", "", "amount in raw token units")
	root.AddCommand(feeCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command) (*config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runFee(cmd *cobra.Command, _ []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetString("amount")
	amount, err := domain.ParseAmount(raw)
	if err != nil {
		return err
	}

	fees, err := fee_usecase.New(cfg.FeeTiers)
	if err != nil {
		return err
	}

	fee := fees.FeeFor(amount)
	fmt.Fprintf(cmd.OutOrStdout(), "amount: %s\nfee: %s\nseller: %s\n", amount, fee, new(big.Int).Sub(amount, fee))
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	context := ctx.Background()

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middL.CORS)
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	// in-process caches
	httpCache := primitive.NewPrimitive("http_cache", 32)
	nonceCache := primitive.NewPrimitive("nonce_cache", 8)

	// external collaborators
	context.Info("init ledgers")
	assets := ledger.NewAssets()
	funds := ledger.NewFunds()
	events := eventlog.New(domain.SystemClock)

	context.Info("init chain client")
	chainClient, err := chain.NewClient(context, &chain.ClientCfg{RpcUrls: cfg.RpcUrls})
	if err != nil {
		// feeds on chains that failed to dial fail per call with chain.ErrUnsupportedChain
		context.WithField("err", err).Warn("chain.NewClient failed")
	}
	priceFeed := chainlink_service.New(chainClient, cfg.OracleChainId, cfg.OracleCacheTtl)

	// token support table
	tokens := paytoken_usecase.New(cfg.Owner, paytoken_repository.NewPayTokenRepo(), funds, events)
	for _, t := range cfg.QuoteTokens {
		addr := domain.Address(t.Address).ToLower()
		if !addr.IsNative() {
			if err := funds.RegisterToken(context, addr, t.Decimals); err != nil {
				context.WithFields(log.Fields{"err": err, "token": addr}).Error("funds.RegisterToken failed")
				return err
			}
		}
		if err := tokens.AddQuoteToken(context, cfg.Owner, addr, domain.Address(t.PriceFeed).ToLower(), t.Symbol); err != nil {
			context.WithFields(log.Fields{"err": err, "token": addr}).Error("tokens.AddQuoteToken failed")
			return err
		}
	}
	oracle := chainlink_usecase.New(priceFeed, tokens, domain.SystemClock, cfg.OracleMaxAge)

	fees, err := fee_usecase.New(cfg.FeeTiers)
	if err != nil {
		context.WithField("err", err).Error("fee_usecase.New failed")
		return err
	}

	auctionRepo := auction_repository.NewAuctionRepo()
	registry := registry_usecase.New(&registry_usecase.RegistryUseCaseCfg{
		Owner:                cfg.Owner,
		PlatformFeeRecipient: cfg.PlatformFeeRecipient,
		Address:              cfg.RegistryAddress,
		AuctionRepo:          auctionRepo,
		Tokens:               tokens,
		Fees:                 fees,
		Assets:               assets,
		Events:               events,
		Clock:                domain.SystemClock,
	})
	auction := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		Repo:          auctionRepo,
		Registry:      registry,
		Fees:          fees,
		Oracle:        oracle,
		Assets:        assets,
		Funds:         funds,
		Events:        events,
		Clock:         domain.SystemClock,
		SettleWorkers: cfg.SettleWorkers,
	})

	crosschain := crosschain_usecase.New(cfg.Owner, auction, events)
	for _, chainId := range cfg.SupportedChains {
		if err := crosschain.AddSupportedChain(context, cfg.Owner, chainId); err != nil {
			context.WithFields(log.Fields{"err": err, "chain": chainId}).Error("crosschain.AddSupportedChain failed")
			return err
		}
	}

	auth := auth_usecase.New(&auth_usecase.AuthUseCaseCfg{
		JwtSecret:          cfg.JwtSecret,
		SigningMsgTemplate: cfg.SignatureMsg,
		Nonces: cache.New(cache.ServiceConfig{
			Ttl:   cfg.NonceTtl,
			Pfx:   keys.PfxNonce,
			Cache: nonceCache,
		}),
		TokenTtl: cfg.TokenTtl,
		Clock:    domain.SystemClock,
	})
	authMiddleware := auth_middleware.New(auth, registry.Owner)

	hc := hc_usecase.New(hc_repo.New(httpCache), domain.SystemClock)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	paytoken_delivery.New(e, tokens, oracle, authMiddleware)
	fee_delivery.New(e, fees, httpCache)
	registry_delivery.New(e, registry, authMiddleware)
	auction_delivery.New(e, auction, events, authMiddleware)
	crosschain_delivery.New(e, crosschain, authMiddleware)
	ledger_delivery.New(e, assets, funds, authMiddleware)

	serverPanic := goroutine.RecoverableGo(func() {
		context.WithField("listen", cfg.Listen).Info("starting server")
		if err := e.Start(cfg.Listen); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}, goroutine.WithName("http"))

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		log.Log().WithField("signal", sig).Info("received signal")
	case p, ok := <-serverPanic:
		if ok {
			return fmt.Errorf("server panicked: %v", p.Panic)
		}
		return fmt.Errorf("server stopped")
	}
	c, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(c); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
		return err
	}
	log.Log().Info("shutdown server successfully")
	return nil
}
