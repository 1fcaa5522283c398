package dic

import (
	"github.com/ZilDuck/nft-test-market/internal/market"
	"github.com/ZilDuck/nft-test-market/internal/notification"
	"github.com/ZilDuck/nft-test-market/internal/opensea"
	"github.com/ZilDuck/nft-test-market/internal/wallet"
	"github.com/ZilDuck/nft-test-market/internal/web"
	"github.com/sarulabs/di/v2"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		return nil, err
	}

	return &Container{builder.Build()}, nil
}

func (c *Container) Delete() error {
	return c.ctn.Delete()
}

func (c *Container) GetConnector() wallet.Connector {
	return c.ctn.Get("connector").(wallet.Connector)
}

func (c *Container) GetNotifications() notification.Center {
	return c.ctn.Get("notifications").(notification.Center)
}

func (c *Container) SafeGetOpensea() (opensea.Port, error) {
	port, err := c.ctn.SafeGet("opensea")
	if err != nil {
		return nil, err
	}

	return port.(opensea.Port), nil
}

func (c *Container) SafeGetMarket() (*market.Market, error) {
	m, err := c.ctn.SafeGet("market")
	if err != nil {
		return nil, err
	}

	return m.(*market.Market), nil
}

func (c *Container) SafeGetWebServer() (web.Server, error) {
	s, err := c.ctn.SafeGet("web")
	if err != nil {
		return web.Server{}, err
	}

	return s.(web.Server), nil
}
