package main

import (
	"errors"
	"fmt"
	"github.com/ZilDuck/nft-test-market/internal/config"
	"github.com/ZilDuck/nft-test-market/internal/dic"
	"github.com/ZilDuck/nft-test-market/internal/helper"
	"github.com/ZilDuck/nft-test-market/internal/market"
	"github.com/ZilDuck/nft-test-market/internal/notification"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"os"
)

var (
	container     *dic.Container
	marketplace   *market.Market
	notifications notification.Center
)

func main() {
	config.Init("cli")

	var err error
	container, err = dic.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}
	defer container.Delete()

	marketplace, err = container.SafeGetMarket()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to create market")
	}
	notifications = container.GetNotifications()

	app := &cli.App{
		Name:  "market",
		Usage: "browse and buy assets from the " + marketplace.Collection() + " collection",
		Commands: []*cli.Command{
			{
				Name:   "assets",
				Usage:  "List the assets of the collection",
				Action: listAssets,
			},
			{
				Name:   "login",
				Usage:  "Request account access from the wallet provider",
				Action: login,
			},
			{
				Name:   "buy",
				Usage:  "Buy an asset with the connected wallet",
				Action: buy,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "contract", Usage: "asset contract address", Required: true},
					&cli.StringFlag{Name: "token", Usage: "token id", Required: true},
				},
			},
		},
	}

	err = app.Run(os.Args)
	printNotifications()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Command failed")
	}
}

// ASSETS
func listAssets(c *cli.Context) error {
	assets, err := marketplace.LoadAssets(c.Context)
	if err != nil {
		return err
	}

	gateway := config.Get().IpfsGateway

	zap.S().Infof("Found %d assets in %s", len(assets), marketplace.Collection())
	for _, asset := range assets {
		fmt.Printf("%s\t%s\t%s\t%s\n", asset.AssetContract.Address, asset.TokenId, asset.Collection.Name, helper.GatewayUrl(asset.ImageUrl, gateway))
	}

	return nil
}

// WALLET
func login(c *cli.Context) error {
	address, err := marketplace.Connect(c.Context)
	if err != nil {
		return err
	}

	fmt.Println(address)
	return nil
}

// PURCHASE
func buy(c *cli.Context) error {
	if err := marketplace.Mount(c.Context); err != nil {
		return err
	}
	if marketplace.Address() == "" {
		if _, err := marketplace.Connect(c.Context); err != nil {
			return err
		}
	}

	txHash, err := marketplace.Buy(c.Context, c.String("token"), c.String("contract"))
	if errors.Is(err, market.ErrAssetNotFound) {
		zap.L().With(zap.String("contract", c.String("contract")), zap.String("token", c.String("token"))).Error("Asset is not part of the collection")
	}
	if err != nil {
		return err
	}

	fmt.Println(txHash)
	return nil
}

func printNotifications() {
	for _, n := range notifications.All() {
		fmt.Printf("[%s] %s: %s\n", n.Type, n.Message, n.Description)
	}
}
