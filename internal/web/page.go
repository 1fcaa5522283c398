package web

import (
	_ "embed"
	"fmt"
	"github.com/ZilDuck/nft-test-market/internal/helper"
	"github.com/ZilDuck/nft-test-market/internal/market"
	"github.com/aymerick/raymond"
	"github.com/microcosm-cc/bluemonday"
	"net/url"
)

//go:embed templates/market.hbs
var marketTemplate string

type page struct {
	Address       string
	Authenticated bool
	CsrfToken     string
	Cards         []card
	Fillers       []struct{}
	Notifications []notice
}

type card struct {
	Key         string
	Title       string
	Description string
	ImageUrl    string
	BuyUrl      string
	CsrfToken   string
	Pending     bool
}

type notice struct {
	ID          string
	Type        string
	Message     string
	Description string
}

func parsePage() (*raymond.Template, error) {
	return raymond.Parse(marketTemplate)
}

func newPage(view market.View, policy *bluemonday.Policy, gateway, csrfToken string) page {
	p := page{
		Address:       view.Address,
		Authenticated: view.Authenticated,
		CsrfToken:     csrfToken,
		Cards:         make([]card, 0, len(view.Cards)),
		Fillers:       make([]struct{}, view.Fillers),
		Notifications: make([]notice, 0, len(view.Notifications)),
	}

	for _, c := range view.Cards {
		p.Cards = append(p.Cards, card{
			Key:         c.Key,
			Title:       c.Collection.Name,
			Description: policy.Sanitize(c.Description),
			ImageUrl:    helper.GatewayUrl(c.ImageUrl, gateway),
			BuyUrl:      buyUrl(c.AssetContract.Address, c.TokenId),
			CsrfToken:   csrfToken,
			Pending:     c.Pending,
		})
	}

	for _, n := range view.Notifications {
		p.Notifications = append(p.Notifications, notice{n.ID, string(n.Type), n.Message, n.Description})
	}

	return p
}

func buyUrl(contractAddr, tokenId string) string {
	return fmt.Sprintf("/assets/%s/%s/buy", url.PathEscape(contractAddr), url.PathEscape(tokenId))
}
