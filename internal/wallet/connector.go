package wallet

import (
	"context"
	"errors"
)

var (
	ErrProviderNotFound = errors.New("wallet provider is not found")
	ErrNoAccounts       = errors.New("wallet provider returned no accounts")
)

type Connector interface {
	Connect(ctx context.Context) (string, error)
	CheckExisting(ctx context.Context) (string, bool, error)
	Provider() Provider
}

type connector struct {
	provider Provider
}

// NewConnector accepts a nil provider, meaning no wallet capability is available.
func NewConnector(provider Provider) Connector {
	return connector{provider}
}

func (c connector) Provider() Provider {
	return c.provider
}

func (c connector) Connect(ctx context.Context) (string, error) {
	if c.provider == nil {
		return "", ErrProviderNotFound
	}

	accounts, err := c.provider.RequestAccounts(ctx)
	if err != nil {
		return "", err
	}
	if len(accounts) == 0 {
		return "", ErrNoAccounts
	}

	return accounts[0], nil
}

func (c connector) CheckExisting(ctx context.Context) (string, bool, error) {
	if c.provider == nil {
		return "", false, nil
	}

	accounts, err := c.provider.GetAuthorizedAccounts(ctx)
	if err != nil {
		return "", false, err
	}
	if len(accounts) == 0 {
		return "", false, nil
	}

	return accounts[0], true, nil
}
