package dic

import (
	"github.com/ZilDuck/nft-test-market/internal/config"
	"github.com/ZilDuck/nft-test-market/internal/entity"
	"github.com/ZilDuck/nft-test-market/internal/market"
	"github.com/ZilDuck/nft-test-market/internal/notification"
	"github.com/ZilDuck/nft-test-market/internal/opensea"
	"github.com/ZilDuck/nft-test-market/internal/wallet"
	"github.com/ZilDuck/nft-test-market/internal/web"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

var Definitions = []di.Def{
	{
		Name:  "http.client",
		Scope: di.App,
		Build: func(ctn di.Container) (interface{}, error) {
			cfg := config.Get().Marketplace
			return opensea.NewHttpClient(cfg.Timeout, cfg.RetryMax), nil
		},
	},
	{
		Name:  "wallet",
		Scope: di.App,
		Build: func(ctn di.Container) (interface{}, error) {
			cfg := config.Get().Wallet
			client, err := wallet.NewClient(cfg.Url, cfg.Timeout, cfg.Debug)
			if err != nil {
				return nil, err
			}

			return wallet.NewProvider(client), nil
		},
	},
	{
		Name:  "connector",
		Scope: di.App,
		Build: func(ctn di.Container) (interface{}, error) {
			return wallet.NewConnector(walletProvider(ctn)), nil
		},
	},
	{
		Name:  "opensea.api",
		Scope: di.App,
		Build: func(ctn di.Container) (interface{}, error) {
			cfg := config.Get()
			network, err := entity.ParseNetwork(cfg.Network)
			if err != nil {
				return nil, err
			}

			client := ctn.Get("http.client").(*retryablehttp.Client)
			return opensea.NewApi(network, cfg.Marketplace.Url, cfg.Marketplace.ApiKey, client), nil
		},
	},
	{
		Name:  "opensea",
		Scope: di.App,
		Build: func(ctn di.Container) (interface{}, error) {
			api, err := ctn.SafeGet("opensea.api")
			if err != nil {
				return nil, err
			}

			return opensea.NewPort(api.(opensea.Api), walletProvider(ctn)), nil
		},
	},
	{
		Name:  "notifications",
		Scope: di.App,
		Build: func(ctn di.Container) (interface{}, error) {
			return notification.NewCenter(config.Get().NotificationTtl), nil
		},
	},
	{
		Name:  "market",
		Scope: di.App,
		Build: func(ctn di.Container) (interface{}, error) {
			port, err := ctn.SafeGet("opensea")
			if err != nil {
				return nil, err
			}

			cfg := config.Get()
			return market.NewMarket(
				ctn.Get("connector").(wallet.Connector),
				port.(opensea.Port),
				ctn.Get("notifications").(notification.Center),
				market.Config{
					Collection:  cfg.Collection,
					FillerCards: cfg.FillerCards,
				},
			), nil
		},
	},
	{
		Name:  "web",
		Scope: di.App,
		Build: func(ctn di.Container) (interface{}, error) {
			m, err := ctn.SafeGet("market")
			if err != nil {
				return nil, err
			}

			cfg := config.Get()
			server, err := web.NewServer(
				m.(*market.Market),
				ctn.Get("notifications").(notification.Center),
				web.Config{
					IpfsGateway:  cfg.IpfsGateway,
					CsrfKey:      []byte(cfg.CsrfKey),
					SecureCookie: cfg.SecureCookie,
				},
			)
			if err != nil {
				return nil, err
			}

			return server, nil
		},
	},
}

// walletProvider is nil when no wallet endpoint is configured.
func walletProvider(ctn di.Container) wallet.Provider {
	provider, err := ctn.SafeGet("wallet")
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Wallet provider not available")
		return nil
	}

	return provider.(wallet.Provider)
}
