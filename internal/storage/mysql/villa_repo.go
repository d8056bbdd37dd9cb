package mysql

import (
	"context"
	"database/sql"

	"villamarket/internal/domain"
)

type VillaRepo struct{ db *sql.DB }

func NewVillaRepo(db *sql.DB) *VillaRepo { return &VillaRepo{db: db} }

func (r *VillaRepo) Create(ctx context.Context, v domain.Villa) (domain.Villa, error) {
	res, err := r.db.ExecContext(ctx, insertVillaSQL,
		v.Title, v.City, v.Address,
		v.BaseCapacity, v.MaximumCapacity, v.Area, v.BedCount,
		v.HasPool, v.HasCoolingSystem,
		v.BasePricePerNight, v.ExtraPersonPrice, v.Rating,
		v.ImageURL,
	)
	if err != nil {
		return domain.Villa{}, domain.Wrap(domain.KindInternal, "insert villa", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Villa{}, domain.Wrap(domain.KindInternal, "insert villa", err)
	}
	v.ID = id
	return v, nil
}

func (r *VillaRepo) Update(ctx context.Context, v domain.Villa) error {
	res, err := r.db.ExecContext(ctx, updateVillaSQL,
		v.Title, v.City, v.Address,
		v.BaseCapacity, v.MaximumCapacity, v.Area, v.BedCount,
		v.HasPool, v.HasCoolingSystem,
		v.BasePricePerNight, v.ExtraPersonPrice, v.Rating,
		v.ImageURL,
		v.ID,
	)
	if err != nil {
		return domain.Wrap(domain.KindInternal, "update villa", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Row may exist with identical values; re-check before reporting absence.
		if _, gerr := r.Get(ctx, v.ID); gerr != nil {
			return gerr
		}
	}
	return nil
}

func (r *VillaRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteVillaSQL, id)
	if err != nil {
		return domain.Wrap(domain.KindInternal, "delete villa", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.E(domain.KindNotFound, "Villa not found")
	}
	return nil
}

func (r *VillaRepo) Get(ctx context.Context, id int64) (domain.Villa, error) {
	row := r.db.QueryRowContext(ctx, getVillaSQL, id)
	v, err := scanVilla(row)
	if err == sql.ErrNoRows {
		return domain.Villa{}, domain.E(domain.KindNotFound, "Villa not found")
	}
	if err != nil {
		return domain.Villa{}, domain.Wrap(domain.KindInternal, "get villa", err)
	}
	return v, nil
}

func (r *VillaRepo) List(ctx context.Context, q domain.VillasQuery) ([]domain.Villa, error) {
	city := nilStr(q.City)
	minCap := nilInt(q.MinCapacity)
	maxPrice := nilF64(q.MaxPrice)
	rows, err := r.db.QueryContext(ctx, listVillasSQL,
		city, city, minCap, minCap, maxPrice, maxPrice)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "list villas", err)
	}
	defer rows.Close()

	out := []domain.Villa{}
	for rows.Next() {
		v, err := scanVilla(rows)
		if err != nil {
			return nil, domain.Wrap(domain.KindInternal, "list villas", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Wrap(domain.KindInternal, "list villas", err)
	}
	return out, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanVilla(row rowScanner) (domain.Villa, error) {
	var v domain.Villa
	var image sql.NullString
	err := row.Scan(
		&v.ID, &v.Title, &v.City, &v.Address,
		&v.BaseCapacity, &v.MaximumCapacity, &v.Area, &v.BedCount,
		&v.HasPool, &v.HasCoolingSystem,
		&v.BasePricePerNight, &v.ExtraPersonPrice, &v.Rating,
		&image,
	)
	if err != nil {
		return domain.Villa{}, err
	}
	if image.Valid {
		v.ImageURL = image.String
	}
	return v, nil
}

func nilStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func nilInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nilF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
