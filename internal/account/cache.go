package account

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/younglafire/fruitfarm/internal/domain"
)

// cacheSchemaVersion invalidates cached entries when the cached shape changes
const cacheSchemaVersion = "1"

type cachedAccount struct {
	version string
	account domain.Account
}

// accountCache keeps resolved accounts by address with a TTL
type accountCache struct {
	lru *expirable.LRU[string, cachedAccount]
}

func newAccountCache(size int, ttl time.Duration) *accountCache {
	return &accountCache{lru: expirable.NewLRU[string, cachedAccount](size, nil, ttl)}
}

// Get returns a copy of the cached account
func (c *accountCache) Get(address string) (*domain.Account, bool) {
	entry, ok := c.lru.Get(address)
	if !ok {
		return nil, false
	}
	if entry.version != cacheSchemaVersion {
		c.lru.Remove(address)
		return nil, false
	}
	a := entry.account
	return &a, true
}

func (c *accountCache) Set(a *domain.Account) {
	c.lru.Add(a.Address, cachedAccount{version: cacheSchemaVersion, account: *a})
}

func (c *accountCache) Len() int {
	return c.lru.Len()
}
