package helper

import (
	"net/url"
	"regexp"
	"strings"
)

var cidPattern = regexp.MustCompile("(Qm[1-9A-HJ-NP-Za-km-z]{44}.*$)")

func IsUrl(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func IsIpfs(uri string) bool {
	if strings.HasPrefix(uri, "ipfs://") {
		return true
	}

	return !IsUrl(uri) && len(cidPattern.FindStringSubmatch(uri)) == 2
}

// GatewayUrl rewrites ipfs:// and bare CID image references onto an HTTP gateway.
// Anything else is returned untouched.
func GatewayUrl(uri, gateway string) string {
	if gateway == "" || !IsIpfs(uri) {
		return uri
	}

	path := strings.TrimPrefix(uri, "ipfs://")
	path = strings.TrimPrefix(path, "ipfs/")
	if parts := cidPattern.FindStringSubmatch(path); len(parts) == 2 {
		path = parts[1]
	}

	return strings.TrimSuffix(gateway, "/") + "/" + path
}
