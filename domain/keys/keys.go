package keys

import (
	"strings"
)

const (
	// PfxNonce is used for prefixing sign-in nonce keys
	PfxNonce = "nonce"
	// PfxPriceFeed is used for prefixing cached feed readings
	PfxPriceFeed = "priceFeed"
	// PfxHealthCheck is used for prefixing health probe keys
	PfxHealthCheck = "healthCheck"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// CacheKey is used to join the cache key by componets
func CacheKey(components ...string) string {
	return CustomKey(":", components...)
}
