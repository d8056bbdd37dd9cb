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

// VillaDirectoryClient fetches authoritative villa records from the villa
// service. The reservation orchestrator calls it once per request, with no
// retries: a stale read is acceptable, a hidden retry storm is not.
type VillaDirectoryClient struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func NewVillaDirectoryClient(base string, rps int) *VillaDirectoryClient {
	if rps <= 0 {
		rps = 50
	}
	return &VillaDirectoryClient{
		base: base,
		hc:   &http.Client{Timeout: 10 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *VillaDirectoryClient) GetVilla(ctx context.Context, id int64) (domain.Villa, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.Villa{}, domain.Wrap(domain.KindUpstream, "villa directory unavailable", err)
	}

	url := fmt.Sprintf("%s/villas/%d", c.base, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Villa{}, domain.Wrap(domain.KindInternal, "build villa request", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("villa", "get_villa", 0, time.Since(start))
		return domain.Villa{}, domain.Wrap(domain.KindUpstream, "villa directory unavailable", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("villa", "get_villa", resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
		var v domain.Villa
		if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
			return domain.Villa{}, domain.Wrap(domain.KindUpstream, "villa directory unavailable", err)
		}
		return v, nil
	case resp.StatusCode == http.StatusNotFound:
		return domain.Villa{}, domain.E(domain.KindNotFound, "Villa not found")
	default:
		return domain.Villa{}, domain.E(domain.KindUpstream,
			fmt.Sprintf("villa directory returned %d", resp.StatusCode))
	}
}
