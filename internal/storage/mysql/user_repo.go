package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"villamarket/internal/domain"
)

const mysqlErrDuplicateEntry = 1062

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Name, u.Email, u.PhoneNumber, u.Role, u.PasswordHash)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return domain.User{}, domain.Wrap(domain.KindInvalid, "email already registered", err)
		}
		return domain.User{}, domain.Wrap(domain.KindInternal, "insert user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, domain.Wrap(domain.KindInternal, "insert user", err)
	}
	u.ID = id
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(r.db.QueryRowContext(ctx, getUserByEmailSQL, email))
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return r.getUser(r.db.QueryRowContext(ctx, getUserByIDSQL, id))
}

func (r *UserRepo) getUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &u.Role, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.E(domain.KindNotFound, "User not found")
	}
	if err != nil {
		return domain.User{}, domain.Wrap(domain.KindInternal, "get user", err)
	}
	return u, nil
}
