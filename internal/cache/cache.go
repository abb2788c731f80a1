// Package cache holds order details looked up remotely for orders the store
// does not know about.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/TemirB/merchant-orders-sync/internal/domain"
)

type Cache struct {
	lru *expirable.LRU[string, domain.OrderDetail]
}

func New(size int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, domain.OrderDetail](size, nil, ttl),
	}
}

func (c *Cache) Get(orderID string) (*domain.OrderDetail, bool) {
	d, ok := c.lru.Get(orderID)
	if !ok {
		return nil, false
	}
	return &d, true
}

func (c *Cache) Set(d *domain.OrderDetail) {
	c.lru.Add(d.ID, *d)
}

func (c *Cache) Remove(orderID string) {
	c.lru.Remove(orderID)
}

func (c *Cache) Len() int {
	return c.lru.Len()
}
