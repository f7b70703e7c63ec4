package redisfeed

import "sellerconsole/internal/core/domain/model/kernel"

// OnBridgeOpened lets tests act between the Redis subscription being confirmed
// and Subscribe returning.
func OnBridgeOpened(f *Feed, fn func(sellerID kernel.UUID)) {
	f.bridgeOpened = fn
}
