package entity

import (
	"github.com/shopspring/decimal"
)

type OrderSide int

const (
	BuySide  OrderSide = 0
	SellSide OrderSide = 1
)

func (s OrderSide) String() string {
	if s == SellSide {
		return "sell"
	}
	return "buy"
}

type Order struct {
	Hash                 string          `json:"order_hash"`
	Side                 OrderSide       `json:"side"`
	TokenId              string          `json:"token_id"`
	AssetContractAddress string          `json:"asset_contract_address"`
	Maker                string          `json:"maker"`
	CurrentPrice         decimal.Decimal `json:"current_price"`
	PaymentToken         string          `json:"payment_token"`
	ProtocolAddress      string          `json:"protocol_address"`
	ExpirationTime       int64           `json:"expiration_time"`
}
