package market

import (
	"context"
	"github.com/ZilDuck/nft-test-market/internal/entity"
	"github.com/ZilDuck/nft-test-market/internal/opensea"
	"sync"
)

type fakeProvider struct {
	mu              sync.Mutex
	requested       []string
	requestErr      error
	authorized      []string
	authorizedErr   error
	requestCalls    int
	authorizedCalls int
}

func (p *fakeProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requestCalls++
	return p.requested, p.requestErr
}

func (p *fakeProvider) GetAuthorizedAccounts(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.authorizedCalls++
	return p.authorized, p.authorizedErr
}

func (p *fakeProvider) SendTransaction(ctx context.Context, tx entity.Transaction) (string, error) {
	return "", nil
}

type fakeApi struct {
	mu         sync.Mutex
	assets     []entity.Asset
	assetsErr  error
	order      *entity.Order
	orderErr   error
	orderCalls int
	orderQuery opensea.OrderQuery

	// when set, GetOrder signals started and waits for release
	started chan struct{}
	release chan struct{}
}

func (a *fakeApi) GetAssets(ctx context.Context, query opensea.AssetQuery) ([]entity.Asset, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.assets, a.assetsErr
}

func (a *fakeApi) GetOrder(ctx context.Context, query opensea.OrderQuery) (*entity.Order, error) {
	a.mu.Lock()
	a.orderCalls++
	a.orderQuery = query
	started, release := a.started, a.release
	a.mu.Unlock()

	if started != nil {
		started <- struct{}{}
		<-release
	}

	return a.order, a.orderErr
}

func (a *fakeApi) GetFulfillmentData(ctx context.Context, order entity.Order, fulfiller string) (*entity.Transaction, error) {
	return &entity.Transaction{}, nil
}

func (a *fakeApi) calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.orderCalls
}

type fakePort struct {
	api          *fakeApi
	mu           sync.Mutex
	txHash       string
	fulfillErr   error
	fulfillCalls int
	fulfilled    opensea.FulfillOrderParams
}

func (p *fakePort) Api() opensea.Api {
	return p.api
}

func (p *fakePort) FulfillOrder(ctx context.Context, params opensea.FulfillOrderParams) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fulfillCalls++
	p.fulfilled = params
	return p.txHash, p.fulfillErr
}

func testAssets() []entity.Asset {
	return []entity.Asset{
		{
			TokenId:       "1",
			Description:   "Tulips",
			ImageUrl:      "https://example.com/1.png",
			AssetContract: entity.AssetContract{Address: "0x88b48f654c30e99bc2e4a1559b4dcf1ad93fa656"},
			Collection:    entity.Collection{Name: "Garden Pictures", Slug: "garden-pictures"},
		},
		{
			TokenId:       "2",
			Description:   "Roses",
			ImageUrl:      "https://example.com/2.png",
			AssetContract: entity.AssetContract{Address: "0x88b48f654c30e99bc2e4a1559b4dcf1ad93fa656"},
			Collection:    entity.Collection{Name: "Garden Pictures", Slug: "garden-pictures"},
		},
	}
}
