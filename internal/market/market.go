package market

import (
	"context"
	"errors"
	"fmt"
	"github.com/ZilDuck/nft-test-market/internal/entity"
	"github.com/ZilDuck/nft-test-market/internal/notification"
	"github.com/ZilDuck/nft-test-market/internal/opensea"
	"github.com/ZilDuck/nft-test-market/internal/wallet"
	"github.com/gosimple/slug"
	"github.com/nu7hatch/gouuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"sync"
)

var (
	ErrWalletNotConnected = errors.New("wallet is not connected")
	ErrAssetNotFound      = errors.New("asset is not listed")
	ErrPurchaseInProgress = errors.New("purchase already in progress")
)

const (
	AuthFailedMessage      = "Can not auth"
	ProviderNotFound       = "Wallet provider is not found, install it"
	LoadFailedMessage      = "Can not load assets"
	PurchaseSuccessMessage = "Purchase success"
	PurchaseFailMessage    = "Purchase fail"
)

type Config struct {
	Collection  string
	FillerCards int
}

// Market holds the state of one storefront page: the connected address and the listed assets.
type Market struct {
	connector   wallet.Connector
	port        opensea.Port
	center      notification.Center
	collection  string
	fillerCards int

	mu       sync.RWMutex
	address  string
	assets   []entity.Asset
	inFlight *cache.Cache
}

func NewMarket(connector wallet.Connector, port opensea.Port, center notification.Center, cfg Config) *Market {
	return &Market{
		connector:   connector,
		port:        port,
		center:      center,
		collection:  slug.Make(cfg.Collection),
		fillerCards: cfg.FillerCards,
		assets:      []entity.Asset{},
		inFlight:    cache.New(cache.NoExpiration, 0),
	}
}

func (m *Market) Collection() string {
	return m.collection
}

// Mount runs the passive wallet check and the asset load side by side. Only a failed
// load is returned, the passive check logs its own failures.
func (m *Market) Mount(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		_, _ = m.CheckExisting(ctx)
		return nil
	})
	g.Go(func() error {
		_, err := m.LoadAssets(ctx)
		return err
	})

	return g.Wait()
}

func (m *Market) Connect(ctx context.Context) (string, error) {
	if address := m.Address(); address != "" {
		return address, nil
	}

	address, err := m.connector.Connect(ctx)
	if err != nil {
		if errors.Is(err, wallet.ErrProviderNotFound) {
			m.center.Error(AuthFailedMessage, ProviderNotFound)
		} else {
			m.center.Error(AuthFailedMessage, err.Error())
		}
		return "", err
	}

	return m.authenticate(address), nil
}

func (m *Market) CheckExisting(ctx context.Context) (string, error) {
	if address := m.Address(); address != "" {
		return address, nil
	}

	address, found, err := m.connector.CheckExisting(ctx)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Failed to check for an authorized wallet")
		return "", err
	}
	if !found {
		zap.L().Debug("No authorized wallet account")
		return "", nil
	}

	return m.authenticate(address), nil
}

// authenticate sets the address once, the first caller wins.
func (m *Market) authenticate(address string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.address == "" {
		m.address = address
		zap.L().With(zap.String("address", address)).Info("Wallet connected")
	}

	return m.address
}

func (m *Market) Address() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.address
}

func (m *Market) LoadAssets(ctx context.Context) ([]entity.Asset, error) {
	assets, err := m.port.Api().GetAssets(ctx, opensea.AssetQuery{Collection: m.collection})
	if err != nil {
		m.center.Error(LoadFailedMessage, err.Error())
		return nil, err
	}
	if assets == nil {
		assets = []entity.Asset{}
	}

	m.mu.Lock()
	m.assets = assets
	m.mu.Unlock()

	zap.L().With(zap.String("collection", m.collection), zap.Int("count", len(assets))).Info("Assets loaded")

	return m.Assets(), nil
}

func (m *Market) Assets() []entity.Asset {
	m.mu.RLock()
	defer m.mu.RUnlock()

	assets := make([]entity.Asset, len(m.assets))
	copy(assets, m.assets)

	return assets
}

func (m *Market) Asset(tokenId, contractAddr string) (entity.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, asset := range m.assets {
		if asset.Matches(tokenId, contractAddr) {
			return asset, nil
		}
	}

	return entity.Asset{}, ErrAssetNotFound
}

func (m *Market) IsPending(asset entity.Asset) bool {
	_, found := m.inFlight.Get(asset.Slug())
	return found
}

// Buy looks up the sell order for the asset and fulfils it as the connected account.
func (m *Market) Buy(ctx context.Context, tokenId, contractAddr string) (string, error) {
	address := m.Address()
	if address == "" {
		m.center.Error(PurchaseFailMessage, ErrWalletNotConnected.Error())
		return "", ErrWalletNotConnected
	}

	asset, err := m.Asset(tokenId, contractAddr)
	if err != nil {
		return "", err
	}

	token, err := m.lock(asset)
	if err != nil {
		zap.L().With(zap.String("asset", asset.Slug())).Warn("Purchase already in progress")
		return "", err
	}
	defer m.unlock(asset, token)

	txHash, err := m.purchase(ctx, asset, address)
	if err != nil {
		m.center.Error(PurchaseFailMessage, err.Error())
		return "", err
	}

	m.center.Success(PurchaseSuccessMessage, fmt.Sprintf("Transaction hash: %s", txHash))

	return txHash, nil
}

// lock holds the asset until unlock is called with the returned token. Locks never expire,
// the purchase itself is bounded by the wallet and marketplace timeouts.
func (m *Market) lock(asset entity.Asset) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	if err := m.inFlight.Add(asset.Slug(), id.String(), cache.NoExpiration); err != nil {
		return "", ErrPurchaseInProgress
	}

	return id.String(), nil
}

func (m *Market) unlock(asset entity.Asset, token string) {
	if held, found := m.inFlight.Get(asset.Slug()); found && held == token {
		m.inFlight.Delete(asset.Slug())
	}
}

func (m *Market) purchase(ctx context.Context, asset entity.Asset, address string) (string, error) {
	order, err := m.port.Api().GetOrder(ctx, opensea.OrderQuery{
		Side:                 entity.SellSide,
		TokenId:              asset.TokenId,
		AssetContractAddress: asset.AssetContract.Address,
	})
	if err != nil {
		return "", err
	}

	return m.port.FulfillOrder(ctx, opensea.FulfillOrderParams{Order: order, AccountAddress: address})
}
