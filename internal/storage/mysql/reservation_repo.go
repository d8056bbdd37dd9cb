package mysql

import (
	"context"
	"database/sql"
	"time"

	"villamarket/internal/domain"
)

type ReservationRepo struct{ db *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

func (r *ReservationRepo) Create(ctx context.Context, rv domain.Reservation) (domain.Reservation, error) {
	res, err := r.db.ExecContext(ctx, insertReservationSQL,
		rv.UserID, rv.VillaID,
		rv.CheckInDate.Time(), rv.CheckOutDate.Time(),
		rv.PeopleCount, rv.TotalPrice,
	)
	if err != nil {
		return domain.Reservation{}, domain.Wrap(domain.KindInternal, "insert reservation", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Reservation{}, domain.Wrap(domain.KindInternal, "insert reservation", err)
	}
	rv.ID = id
	return rv, nil
}

func (r *ReservationRepo) GetOwned(ctx context.Context, id, userID int64) (domain.Reservation, error) {
	row := r.db.QueryRowContext(ctx, getOwnedReservationSQL, id, userID)
	rv, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return domain.Reservation{}, domain.E(domain.KindNotFound, "Reservation not found")
	}
	if err != nil {
		return domain.Reservation{}, domain.Wrap(domain.KindInternal, "get reservation", err)
	}
	return rv, nil
}

func (r *ReservationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, listReservationsByUserSQL, userID)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "list reservations", err)
	}
	defer rows.Close()

	out := []domain.Reservation{}
	for rows.Next() {
		rv, err := scanReservation(rows)
		if err != nil {
			return nil, domain.Wrap(domain.KindInternal, "list reservations", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Wrap(domain.KindInternal, "list reservations", err)
	}
	return out, nil
}

func scanReservation(row rowScanner) (domain.Reservation, error) {
	var rv domain.Reservation
	var in, out time.Time
	err := row.Scan(&rv.ID, &rv.UserID, &rv.VillaID, &in, &out, &rv.PeopleCount, &rv.TotalPrice)
	if err != nil {
		return domain.Reservation{}, err
	}
	rv.CheckInDate = domain.NewDate(in.Year(), in.Month(), in.Day())
	rv.CheckOutDate = domain.NewDate(out.Year(), out.Month(), out.Day())
	return rv, nil
}
