package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/TemirB/merchant-orders-sync/internal/auth"
	"github.com/TemirB/merchant-orders-sync/internal/config"
	"github.com/TemirB/merchant-orders-sync/internal/domain"
)

const tokenPath = "/authentication/v1.0/oauth/token"

// TokenIssuer performs the client_credentials exchange.
type TokenIssuer struct {
	baseURL      string
	clientID     string
	clientSecret string
	http         *http.Client
}

func NewTokenIssuer(cfg config.Remote) *TokenIssuer {
	return &TokenIssuer{
		baseURL:      cfg.BaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		http:         &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// tokenResponse accepts both naming conventions the platform has used.
type tokenResponse struct {
	AccessToken       string `json:"accessToken"`
	ExpiresIn         int64  `json:"expiresIn"`
	LegacyAccessToken string `json:"access_token"`
	LegacyExpiresIn   int64  `json:"expires_in"`
}

func (r tokenResponse) grant() auth.Grant {
	g := auth.Grant{AccessToken: r.AccessToken, ExpiresIn: time.Duration(r.ExpiresIn) * time.Second}
	if g.AccessToken == "" {
		g.AccessToken = r.LegacyAccessToken
	}
	if g.ExpiresIn == 0 {
		g.ExpiresIn = time.Duration(r.LegacyExpiresIn) * time.Second
	}
	return g
}

func (i *TokenIssuer) Issue(ctx context.Context) (auth.Grant, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", i.clientID)
	form.Set("client_secret", i.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return auth.Grant{}, fmt.Errorf("%w: build token request: %w", domain.ErrAuth, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := i.http.Do(req)
	if err != nil {
		return auth.Grant{}, fmt.Errorf("%w: %w: %w", domain.ErrAuth, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return auth.Grant{}, fmt.Errorf("%w: token endpoint returned status %d", domain.ErrAuth, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return auth.Grant{}, fmt.Errorf("%w: decode token response: %w", domain.ErrAuth, err)
	}
	g := tr.grant()
	if g.AccessToken == "" {
		return auth.Grant{}, fmt.Errorf("%w: response has no access token", domain.ErrAuth)
	}
	return g, nil
}
