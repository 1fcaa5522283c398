package entity

import "math/big"

// Transaction is a request for the wallet provider to sign and submit.
type Transaction struct {
	From  string
	To    string
	Value *big.Int
	Data  string
}
