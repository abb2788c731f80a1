// Package auth owns the bearer credential used for every merchant API call.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/TemirB/merchant-orders-sync/internal/domain"
	"github.com/TemirB/merchant-orders-sync/internal/observability"
)

//go:generate mockgen -source internal/auth/credential.go -destination=internal/auth/credential_mock_test.go -package=auth

// DefaultSafetyMargin is subtracted from the nominal expiry.
const DefaultSafetyMargin = 300 * time.Second

type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// UsableAt reports whether the credential may still be sent at now.
func (c Credential) UsableAt(now time.Time, margin time.Duration) bool {
	return c.Token != "" && now.Before(c.ExpiresAt.Add(-margin))
}

// Grant is what the issuer hands back for a client id/secret pair.
type Grant struct {
	AccessToken string
	ExpiresIn   time.Duration
}

type Issuer interface {
	Issue(ctx context.Context) (Grant, error)
}

// Cache lazily exchanges client credentials for a bearer token. Concurrent
// callers that miss share a single exchange.
type Cache struct {
	issuer  Issuer
	margin  time.Duration
	logger  *zap.Logger
	metrics observability.Metrics

	mu    sync.RWMutex
	cred  *Credential
	group singleflight.Group

	now func() time.Time
}

func NewCache(issuer Issuer, margin time.Duration, logger *zap.Logger, metrics observability.Metrics) *Cache {
	if metrics == nil {
		metrics = observability.Noop{}
	}
	return &Cache{
		issuer:  issuer,
		margin:  margin,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Get returns a usable credential, refreshing it first when needed.
func (c *Cache) Get(ctx context.Context) (Credential, error) {
	if cred, ok := c.cached(); ok {
		return cred, nil
	}

	// The exchange outlives a cancelled caller so the others sharing it still get a result.
	ch := c.group.DoChan("credential", func() (any, error) {
		return c.refresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Credential{}, res.Err
		}
		return res.Val.(Credential), nil
	case <-ctx.Done():
		return Credential{}, fmt.Errorf("%w: %w", domain.ErrAuth, ctx.Err())
	}
}

// Invalidate drops the cached credential, e.g. after the remote side answered 401.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.cred = nil
	c.mu.Unlock()
}

func (c *Cache) cached() (Credential, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cred == nil || !c.cred.UsableAt(c.now(), c.margin) {
		return Credential{}, false
	}
	return *c.cred, true
}

func (c *Cache) refresh(ctx context.Context) (Credential, error) {
	// A flight that finished just before this one started may already have refreshed.
	if cred, ok := c.cached(); ok {
		return cred, nil
	}

	c.logger.Info("requesting new access token")
	grant, err := c.issuer.Issue(ctx)
	if err != nil {
		c.metrics.ObserveCredentialRefresh(false)
		c.logger.Error("credential exchange failed", zap.Error(err))
		if errors.Is(err, domain.ErrAuth) {
			return Credential{}, err
		}
		return Credential{}, fmt.Errorf("%w: %w", domain.ErrAuth, err)
	}
	if grant.AccessToken == "" {
		c.metrics.ObserveCredentialRefresh(false)
		c.logger.Error("credential exchange returned no access token")
		return Credential{}, fmt.Errorf("%w: response has no access token", domain.ErrAuth)
	}

	cred := Credential{
		Token:     grant.AccessToken,
		ExpiresAt: c.now().Add(grant.ExpiresIn),
	}
	if grant.ExpiresIn <= c.margin {
		c.logger.Warn("token lifetime is shorter than the safety margin, it will be refreshed on every use",
			zap.Duration("expires_in", grant.ExpiresIn),
			zap.Duration("safety_margin", c.margin),
		)
	}

	c.mu.Lock()
	c.cred = &cred
	c.mu.Unlock()

	c.metrics.ObserveCredentialRefresh(true)
	c.logger.Info("access token obtained", zap.Time("expires_at", cred.ExpiresAt))
	return cred, nil
}
