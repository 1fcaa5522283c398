package opensea

import (
	"context"
	"errors"
	"github.com/ZilDuck/nft-test-market/internal/entity"
	"github.com/ZilDuck/nft-test-market/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

var (
	ErrMissingOrder   = errors.New("order is required")
	ErrInvalidAccount = errors.New("account address is not valid")
)

// Port pairs the marketplace api with the wallet provider that signs fulfilments.
type Port interface {
	Api() Api
	FulfillOrder(ctx context.Context, params FulfillOrderParams) (string, error)
}

type FulfillOrderParams struct {
	Order          *entity.Order
	AccountAddress string
}

type port struct {
	api      Api
	provider wallet.Provider
}

func NewPort(api Api, provider wallet.Provider) Port {
	return port{api, provider}
}

func (p port) Api() Api {
	return p.api
}

func (p port) FulfillOrder(ctx context.Context, params FulfillOrderParams) (string, error) {
	if params.Order == nil {
		return "", ErrMissingOrder
	}
	if !common.IsHexAddress(params.AccountAddress) {
		return "", ErrInvalidAccount
	}
	if p.provider == nil {
		return "", wallet.ErrProviderNotFound
	}

	buyer := common.HexToAddress(params.AccountAddress).Hex()

	tx, err := p.api.GetFulfillmentData(ctx, *params.Order, buyer)
	if err != nil {
		return "", err
	}
	tx.From = buyer

	hash, err := p.provider.SendTransaction(ctx, *tx)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("order", params.Order.Hash), zap.String("buyer", buyer)).Warn("OpenSea: Fulfillment rejected")
		return "", err
	}

	zap.L().With(zap.String("order", params.Order.Hash), zap.String("buyer", buyer), zap.String("tx", hash)).Info("OpenSea: Order fulfilled")

	return hash, nil
}
