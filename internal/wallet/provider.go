package wallet

import (
	"context"
	"github.com/ZilDuck/nft-test-market/internal/entity"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
	"math/big"
)

type Provider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	GetAuthorizedAccounts(ctx context.Context) ([]string, error)
	SendTransaction(ctx context.Context, tx entity.Transaction) (string, error)
}

type provider struct {
	rpcClient *rpcClient
}

func NewProvider(rpcClient *rpcClient) Provider {
	return provider{rpcClient}
}

func (p provider) RequestAccounts(ctx context.Context) ([]string, error) {
	response, err := p.rpcClient.call(ctx, "eth_requestAccounts")
	if err != nil {
		return nil, err
	}

	return response.ResultAsStrings()
}

func (p provider) GetAuthorizedAccounts(ctx context.Context) ([]string, error) {
	response, err := p.rpcClient.call(ctx, "eth_accounts")
	if err != nil {
		return nil, err
	}

	return response.ResultAsStrings()
}

type sendTransactionParams struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
	Data  string `json:"data,omitempty"`
}

func (p provider) SendTransaction(ctx context.Context, tx entity.Transaction) (string, error) {
	value := tx.Value
	if value == nil {
		value = big.NewInt(0)
	}

	params := sendTransactionParams{
		From:  tx.From,
		To:    tx.To,
		Value: hexutil.EncodeBig(value),
		Data:  tx.Data,
	}

	response, err := p.rpcClient.call(ctx, "eth_sendTransaction", params)
	if err != nil {
		return "", err
	}

	hash, err := response.ResultAsString()
	if err != nil {
		return "", err
	}

	zap.L().With(zap.String("from", tx.From), zap.String("to", tx.To), zap.String("hash", hash)).Info("Wallet: Transaction sent")

	return hash, nil
}
