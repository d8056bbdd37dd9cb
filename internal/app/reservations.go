package app

import (
	"context"

	"villamarket/internal/domain"
)

// ReservationService orchestrates the cross-service reservation workflow:
// resolve the caller, fetch the authoritative villa record, validate the
// business rules against it, price the stay, persist.
type ReservationService struct {
	verifier domain.IdentityVerifier
	villas   domain.VillaDirectory
	repo     domain.ReservationRepository
}

func NewReservationService(v domain.IdentityVerifier, d domain.VillaDirectory, r domain.ReservationRepository) *ReservationService {
	return &ReservationService{verifier: v, villas: d, repo: r}
}

// CreateReservation validates the request against a fresh villa snapshot.
// The capacity check is advisory under concurrency: two simultaneous
// requests can both pass it against the same snapshot, since the remote
// read and the local insert are not one transaction. Accepted for this
// domain; a reconciliation pass can be layered on later.
func (s *ReservationService) CreateReservation(ctx context.Context, credential string, villaID int64, checkIn, checkOut domain.Date, people int) (domain.Reservation, error) {
	identity, err := s.authenticate(ctx, credential)
	if err != nil {
		return domain.Reservation{}, err
	}

	// Single fetch, no retries; the directory client separates 404 from
	// transport failures so unreachable does not masquerade as not-found.
	villa, err := s.villas.GetVilla(ctx, villaID)
	if err != nil {
		return domain.Reservation{}, err
	}

	if people > villa.MaximumCapacity {
		return domain.Reservation{}, domain.E(domain.KindInvalid, "People count exceeds maximum capacity")
	}
	if !checkIn.Before(checkOut) {
		return domain.Reservation{}, domain.E(domain.KindInvalid, "Invalid dates")
	}

	nights := checkIn.DaysUntil(checkOut)
	rv := domain.Reservation{
		UserID:       identity.UserID,
		VillaID:      villaID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		PeopleCount:  people,
		TotalPrice:   domain.ReservationPrice(villa, people, nights),
	}
	return s.repo.Create(ctx, rv)
}

func (s *ReservationService) ListReservations(ctx context.Context, credential string) ([]domain.Reservation, error) {
	identity, err := s.authenticate(ctx, credential)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, identity.UserID)
}

func (s *ReservationService) GetReservation(ctx context.Context, credential string, id int64) (domain.Reservation, error) {
	identity, err := s.authenticate(ctx, credential)
	if err != nil {
		return domain.Reservation{}, err
	}
	return s.repo.GetOwned(ctx, id, identity.UserID)
}

// authenticate maps verifier rejections to Unauthorized but lets a
// verifier outage surface as Upstream rather than blaming the caller.
func (s *ReservationService) authenticate(ctx context.Context, credential string) (domain.Identity, error) {
	identity, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindUnauthorized, domain.KindUpstream:
			return domain.Identity{}, err
		default:
			return domain.Identity{}, domain.Wrap(domain.KindUnauthorized, "invalid credential", err)
		}
	}
	return identity, nil
}
