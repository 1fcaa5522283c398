package market

import "github.com/ZilDuck/nft-test-market/internal/entity"

type Card struct {
	entity.Asset
	Key     string
	Pending bool
}

type View struct {
	Address       string
	Authenticated bool
	Collection    string
	Cards         []Card
	Fillers       int
	Notifications []entity.Notification
}

func (v View) CardCount() int {
	return len(v.Cards) + v.Fillers
}

func (m *Market) View() View {
	assets := m.Assets()
	cards := make([]Card, 0, len(assets))
	for _, asset := range assets {
		cards = append(cards, Card{asset, asset.Slug(), m.IsPending(asset)})
	}

	address := m.Address()

	return View{
		Address:       address,
		Authenticated: address != "",
		Collection:    m.collection,
		Cards:         cards,
		Fillers:       m.fillerCards,
		Notifications: m.center.All(),
	}
}
