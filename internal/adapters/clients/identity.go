package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"villamarket/internal/adapters/observability"
	"villamarket/internal/domain"
)

// IdentityClient resolves a bearer credential through the user service's
// profile endpoint. It implements domain.IdentityVerifier for the
// reservation orchestrator and the villa service's admin gate.
type IdentityClient struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func NewIdentityClient(base string, rps int) *IdentityClient {
	if rps <= 0 {
		rps = 50
	}
	return &IdentityClient{
		base: base,
		hc:   &http.Client{Timeout: 10 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *IdentityClient) Verify(ctx context.Context, credential string) (domain.Identity, error) {
	if credential == "" {
		return domain.Identity{}, domain.E(domain.KindUnauthorized, "missing credential")
	}
	if err := c.rl.Wait(ctx); err != nil {
		return domain.Identity{}, domain.Wrap(domain.KindUpstream, "identity verifier unavailable", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/users/profile", nil)
	if err != nil {
		return domain.Identity{}, domain.Wrap(domain.KindInternal, "build profile request", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("user", "profile", 0, time.Since(start))
		return domain.Identity{}, domain.Wrap(domain.KindUpstream, "identity verifier unavailable", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("user", "profile", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		var id domain.Identity
		if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
			return domain.Identity{}, domain.Wrap(domain.KindUpstream, "identity verifier unavailable", err)
		}
		return id, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.Identity{}, domain.E(domain.KindUnauthorized, "invalid credential")
	default:
		return domain.Identity{}, domain.E(domain.KindUpstream,
			fmt.Sprintf("identity verifier returned %d", resp.StatusCode))
	}
}
