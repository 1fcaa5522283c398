package entity

import (
	"fmt"
	"strings"
)

type Network string

const (
	MainNetwork    Network = "main"
	RinkebyNetwork Network = "rinkeby"
)

func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "main", "mainnet", "ethereum":
		return MainNetwork, nil
	case "rinkeby":
		return RinkebyNetwork, nil
	default:
		return "", fmt.Errorf("unsupported network %q", name)
	}
}

func (n Network) ApiUrl() string {
	if n == MainNetwork {
		return "https://api.opensea.io"
	}
	return "https://testnets-api.opensea.io"
}

func (n Network) Chain() string {
	if n == MainNetwork {
		return "ethereum"
	}
	return "rinkeby"
}
