package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"villamarket/internal/app"
	"villamarket/internal/domain"
)

// ---- fakes ----

type fakeVerifier struct {
	identity domain.Identity
	err      error
}

func (f *fakeVerifier) Verify(ctx context.Context, credential string) (domain.Identity, error) {
	if f.err != nil {
		return domain.Identity{}, f.err
	}
	return f.identity, nil
}

type fakeDirectory struct {
	villa domain.Villa
	err   error
	calls int
}

func (f *fakeDirectory) GetVilla(ctx context.Context, id int64) (domain.Villa, error) {
	f.calls++
	if f.err != nil {
		return domain.Villa{}, f.err
	}
	return f.villa, nil
}

type fakeReservationRepo struct {
	nextID    int64
	rows      map[int64]domain.Reservation
	createErr error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{rows: map[int64]domain.Reservation{}}
}

func (f *fakeReservationRepo) Create(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	if f.createErr != nil {
		return domain.Reservation{}, f.createErr
	}
	f.nextID++
	r.ID = f.nextID
	f.rows[r.ID] = r
	return r, nil
}

func (f *fakeReservationRepo) GetOwned(ctx context.Context, id, userID int64) (domain.Reservation, error) {
	r, ok := f.rows[id]
	if !ok || r.UserID != userID {
		return domain.Reservation{}, domain.E(domain.KindNotFound, "Reservation not found")
	}
	return r, nil
}

func (f *fakeReservationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	out := []domain.Reservation{}
	for id := int64(1); id <= f.nextID; id++ {
		if r, ok := f.rows[id]; ok && r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func testVilla() domain.Villa {
	return domain.Villa{
		ID: 42,
		VillaAttributes: domain.VillaAttributes{
			Title:             "Sea Breeze",
			BaseCapacity:      4,
			MaximumCapacity:   6,
			BasePricePerNight: 100,
			ExtraPersonPrice:  20,
		},
	}
}

func date(y, m, d int) domain.Date { return domain.NewDate(y, time.Month(m), d) }

// ---- tests ----

func TestCreateReservation_PricesExtraOccupants(t *testing.T) {
	verifier := &fakeVerifier{identity: domain.Identity{UserID: 11, Role: "user"}}
	dir := &fakeDirectory{villa: testVilla()}
	repo := newFakeReservationRepo()
	svc := app.NewReservationService(verifier, dir, repo)

	// 6 people, 3 nights: 100*3 + (6-4)*20*3 = 420
	rv, err := svc.CreateReservation(context.Background(), "tok", 42,
		date(2024, 5, 10), date(2024, 5, 13), 6)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rv.TotalPrice != 420 {
		t.Fatalf("total price = %v, want 420", rv.TotalPrice)
	}
	if rv.UserID != 11 || rv.VillaID != 42 || rv.ID == 0 {
		t.Fatalf("unexpected reservation: %+v", rv)
	}
	if dir.calls != 1 {
		t.Fatalf("directory calls = %d, want 1 (no retries, no caching)", dir.calls)
	}
}

func TestCreateReservation_BaseOccupancyNoExtraCharge(t *testing.T) {
	verifier := &fakeVerifier{identity: domain.Identity{UserID: 11}}
	dir := &fakeDirectory{villa: testVilla()}
	svc := app.NewReservationService(verifier, dir, newFakeReservationRepo())

	rv, err := svc.CreateReservation(context.Background(), "tok", 42,
		date(2024, 5, 10), date(2024, 5, 12), 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rv.TotalPrice != 200 {
		t.Fatalf("total price = %v, want 200", rv.TotalPrice)
	}
}

func TestCreateReservation_OverCapacity(t *testing.T) {
	verifier := &fakeVerifier{identity: domain.Identity{UserID: 11}}
	dir := &fakeDirectory{villa: testVilla()}
	repo := newFakeReservationRepo()
	svc := app.NewReservationService(verifier, dir, repo)

	_, err := svc.CreateReservation(context.Background(), "tok", 42,
		date(2024, 5, 10), date(2024, 5, 13), 7)
	if domain.KindOf(err) != domain.KindInvalid {
		t.Fatalf("kind = %v, want Invalid", domain.KindOf(err))
	}
	if domain.MessageOf(err) != "People count exceeds maximum capacity" {
		t.Fatalf("message = %q", domain.MessageOf(err))
	}
	if len(repo.rows) != 0 {
		t.Fatal("nothing should be persisted")
	}
}

func TestCreateReservation_OverCapacityWinsEvenWithBadDates(t *testing.T) {
	verifier := &fakeVerifier{identity: domain.Identity{UserID: 11}}
	dir := &fakeDirectory{villa: testVilla()}
	svc := app.NewReservationService(verifier, dir, newFakeReservationRepo())

	// capacity violated and dates inverted; capacity is reported
	_, err := svc.CreateReservation(context.Background(), "tok", 42,
		date(2024, 5, 13), date(2024, 5, 10), 7)
	if domain.MessageOf(err) != "People count exceeds maximum capacity" {
		t.Fatalf("message = %q", domain.MessageOf(err))
	}
}

func TestCreateReservation_EqualDatesInvalid(t *testing.T) {
	verifier := &fakeVerifier{identity: domain.Identity{UserID: 11}}
	dir := &fakeDirectory{villa: testVilla()}
	svc := app.NewReservationService(verifier, dir, newFakeReservationRepo())

	_, err := svc.CreateReservation(context.Background(), "tok", 42,
		date(2024, 5, 10), date(2024, 5, 10), 2)
	if domain.KindOf(err) != domain.KindInvalid {
		t.Fatalf("kind = %v, want Invalid", domain.KindOf(err))
	}
	if domain.MessageOf(err) != "Invalid dates" {
		t.Fatalf("message = %q", domain.MessageOf(err))
	}
}

func TestCreateReservation_VillaNotFound(t *testing.T) {
	verifier := &fakeVerifier{identity: domain.Identity{UserID: 11}}
	dir := &fakeDirectory{err: domain.E(domain.KindNotFound, "Villa not found")}
	svc := app.NewReservationService(verifier, dir, newFakeReservationRepo())

	_, err := svc.CreateReservation(context.Background(), "tok", 999,
		date(2024, 5, 10), date(2024, 5, 13), 2)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("kind = %v, want NotFound", domain.KindOf(err))
	}
}

func TestCreateReservation_DirectoryDownIsUpstreamNotNotFound(t *testing.T) {
	verifier := &fakeVerifier{identity: domain.Identity{UserID: 11}}
	dir := &fakeDirectory{err: domain.E(domain.KindUpstream, "villa directory unavailable")}
	svc := app.NewReservationService(verifier, dir, newFakeReservationRepo())

	_, err := svc.CreateReservation(context.Background(), "tok", 42,
		date(2024, 5, 10), date(2024, 5, 13), 2)
	if domain.KindOf(err) != domain.KindUpstream {
		t.Fatalf("kind = %v, want Upstream", domain.KindOf(err))
	}
}

func TestCreateReservation_BadCredential(t *testing.T) {
	verifier := &fakeVerifier{err: domain.E(domain.KindUnauthorized, "invalid credential")}
	dir := &fakeDirectory{villa: testVilla()}
	svc := app.NewReservationService(verifier, dir, newFakeReservationRepo())

	_, err := svc.CreateReservation(context.Background(), "bad", 42,
		date(2024, 5, 10), date(2024, 5, 13), 2)
	if domain.KindOf(err) != domain.KindUnauthorized {
		t.Fatalf("kind = %v, want Unauthorized", domain.KindOf(err))
	}
	if dir.calls != 0 {
		t.Fatal("villa directory must not be called for unauthenticated requests")
	}
}

func TestCreateReservation_PersistenceFailureIsInternal(t *testing.T) {
	verifier := &fakeVerifier{identity: domain.Identity{UserID: 11}}
	dir := &fakeDirectory{villa: testVilla()}
	repo := newFakeReservationRepo()
	repo.createErr = errors.New("connection reset")
	svc := app.NewReservationService(verifier, dir, repo)

	_, err := svc.CreateReservation(context.Background(), "tok", 42,
		date(2024, 5, 10), date(2024, 5, 13), 2)
	if domain.KindOf(err) != domain.KindInternal {
		t.Fatalf("kind = %v, want Internal", domain.KindOf(err))
	}
}

func TestGetReservation_OtherUsersRowLooksAbsent(t *testing.T) {
	repo := newFakeReservationRepo()
	owner := &fakeVerifier{identity: domain.Identity{UserID: 1}}
	dir := &fakeDirectory{villa: testVilla()}
	svc := app.NewReservationService(owner, dir, repo)

	rv, err := svc.CreateReservation(context.Background(), "tok", 42,
		date(2024, 5, 10), date(2024, 5, 13), 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// same service, different caller
	other := app.NewReservationService(&fakeVerifier{identity: domain.Identity{UserID: 2}}, dir, repo)
	_, err = other.GetReservation(context.Background(), "tok2", rv.ID)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("kind = %v, want NotFound (non-leakage)", domain.KindOf(err))
	}

	got, err := svc.GetReservation(context.Background(), "tok", rv.ID)
	if err != nil || got.ID != rv.ID {
		t.Fatalf("owner read failed: %v %+v", err, got)
	}
}

func TestListReservations_ScopedToCaller(t *testing.T) {
	repo := newFakeReservationRepo()
	dir := &fakeDirectory{villa: testVilla()}
	alice := app.NewReservationService(&fakeVerifier{identity: domain.Identity{UserID: 1}}, dir, repo)
	bob := app.NewReservationService(&fakeVerifier{identity: domain.Identity{UserID: 2}}, dir, repo)

	if _, err := alice.CreateReservation(context.Background(), "a", 42, date(2024, 5, 10), date(2024, 5, 12), 2); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := bob.CreateReservation(context.Background(), "b", 42, date(2024, 6, 1), date(2024, 6, 3), 2); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := alice.ListReservations(context.Background(), "a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].UserID != 1 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
