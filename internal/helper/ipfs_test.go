package helper

import "testing"

func TestGatewayUrl(t *testing.T) {
	cid := "QmXoypizjW3WknFiJnKLwHCnL72vedxjQkDDP1mXWo6uco"
	gateway := "https://ipfs.io/ipfs/"

	tests := map[string]struct {
		uri      string
		gateway  string
		expected string
	}{
		"ipfs scheme":        {"ipfs://" + cid + "/1.png", gateway, "https://ipfs.io/ipfs/" + cid + "/1.png"},
		"ipfs scheme prefix": {"ipfs://ipfs/" + cid, gateway, "https://ipfs.io/ipfs/" + cid},
		"bare cid":           {cid, gateway, "https://ipfs.io/ipfs/" + cid},
		"http url":           {"https://lh3.googleusercontent.com/abc", gateway, "https://lh3.googleusercontent.com/abc"},
		"http gateway url":   {"https://gateway.pinata.cloud/ipfs/" + cid, gateway, "https://gateway.pinata.cloud/ipfs/" + cid},
		"no gateway":         {"ipfs://" + cid, "", "ipfs://" + cid},
		"empty":              {"", gateway, ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := GatewayUrl(tt.uri, tt.gateway); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
