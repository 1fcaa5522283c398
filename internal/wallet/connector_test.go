package wallet

import (
	"context"
	"errors"
	"github.com/ZilDuck/nft-test-market/internal/entity"
	"testing"
)

type stubProvider struct {
	requested     []string
	requestErr    error
	authorized    []string
	authorizedErr error
}

func (p stubProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	return p.requested, p.requestErr
}

func (p stubProvider) GetAuthorizedAccounts(ctx context.Context) ([]string, error) {
	return p.authorized, p.authorizedErr
}

func (p stubProvider) SendTransaction(ctx context.Context, tx entity.Transaction) (string, error) {
	return "", nil
}

func TestConnectWithoutProvider(t *testing.T) {
	c := NewConnector(nil)

	if _, err := c.Connect(context.Background()); !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("expected ErrProviderNotFound, got %v", err)
	}
}

func TestCheckExistingWithoutProvider(t *testing.T) {
	address, found, err := NewConnector(nil).CheckExisting(context.Background())
	if err != nil || found || address != "" {
		t.Errorf("expected a silent miss, got %q %v %v", address, found, err)
	}
}

func TestConnectReturnsFirstAccount(t *testing.T) {
	c := NewConnector(stubProvider{requested: []string{"0x1", "0x2"}})

	address, err := c.Connect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if address != "0x1" {
		t.Errorf("expected the first account, got %s", address)
	}
}

func TestConnectWithNoAccounts(t *testing.T) {
	c := NewConnector(stubProvider{requested: []string{}})

	if _, err := c.Connect(context.Background()); !errors.Is(err, ErrNoAccounts) {
		t.Errorf("expected ErrNoAccounts, got %v", err)
	}
}

func TestCheckExisting(t *testing.T) {
	address, found, err := NewConnector(stubProvider{authorized: []string{"0xa", "0xb"}}).CheckExisting(context.Background())
	if err != nil || !found || address != "0xa" {
		t.Errorf("expected the first authorized account, got %q %v %v", address, found, err)
	}

	address, found, err = NewConnector(stubProvider{authorized: []string{}}).CheckExisting(context.Background())
	if err != nil || found || address != "" {
		t.Errorf("expected no account, got %q %v %v", address, found, err)
	}
}
