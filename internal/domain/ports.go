package domain

import (
	"context"
	"io"
	"time"
)

type VillaRepository interface {
	// Write paths
	Create(ctx context.Context, v Villa) (Villa, error)
	Update(ctx context.Context, v Villa) error
	Delete(ctx context.Context, id int64) error

	// Read paths
	Get(ctx context.Context, id int64) (Villa, error)
	List(ctx context.Context, q VillasQuery) ([]Villa, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r Reservation) (Reservation, error)
	// GetOwned returns the reservation only when it belongs to userID;
	// absence and ownership mismatch are the same not-found error.
	GetOwned(ctx context.Context, id, userID int64) (Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]Reservation, error)
}

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
}

// IdentityVerifier resolves a bearer credential into identity claims.
// The reservation and villa services consume the user service through it.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}

// VillaDirectory is the remote authoritative catalog the reservation
// orchestrator validates against. Every request re-fetches; no caching.
type VillaDirectory interface {
	GetVilla(ctx context.Context, id int64) (Villa, error)
}

// MediaGateway uploads an image and returns its retrievable URL.
type MediaGateway interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// ObjectStore is the media service's storage backend.
type ObjectStore interface {
	Put(ctx context.Context, name, contentType string, r io.Reader, size int64) error
	Get(ctx context.Context, name string) (io.ReadCloser, string, error)
}

// OTPStore is an expiring key-value store for one-time codes.
type OTPStore interface {
	Set(ctx context.Context, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, bool, error)
	Del(ctx context.Context, phone string) error
}

// TokenService issues and verifies credentials for the user service.
type TokenService interface {
	Issue(u User) (string, error)
	Verify(credential string) (Identity, error)
}
