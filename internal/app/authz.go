package app

import (
	"context"

	"villamarket/internal/domain"
)

// AdminGate authorizes administrative operations. A rejected credential and
// a valid credential with a non-admin role both come back as the same
// Forbidden error; the wrapped cause keeps them distinguishable in tests
// and logs without widening the wire contract.
type AdminGate struct {
	verifier domain.IdentityVerifier
}

func NewAdminGate(v domain.IdentityVerifier) *AdminGate {
	return &AdminGate{verifier: v}
}

func (g *AdminGate) Authorize(ctx context.Context, credential string) (domain.Identity, error) {
	id, err := g.verifier.Verify(ctx, credential)
	if err != nil {
		return domain.Identity{}, domain.Wrap(domain.KindForbidden, "Admin access required", err)
	}
	if !id.IsAdmin() {
		return domain.Identity{}, domain.E(domain.KindForbidden, "Admin access required")
	}
	return id, nil
}
