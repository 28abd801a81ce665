package postgres

import (
	"context"
	"database/sql"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/users"
)

var (
	_ users.UserRepo  = (*UserRepo)(nil)
	_ users.PhoneRepo = (*PhoneRepo)(nil)
)

const userColumns = `ssn, first_name, last_name, password_hash, membership_type`

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func scanUser(row scanner) (*users.User, error) {
	var (
		u          users.User
		membership sql.NullString
	)
	if err := row.Scan(&u.SSN, &u.FirstName, &u.LastName, &u.PasswordHash, &membership); err != nil {
		return nil, err
	}
	u.MembershipType = membership.String
	return &u, nil
}

func (r *UserRepo) Get(ctx context.Context, ssn string) (*users.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE ssn = $1`, ssn)
	u, err := scanUser(row)
	if err != nil {
		return nil, apperrors.Wrapf(writeErr(err), "[UserRepo Get] %s", ssn)
	}
	return u, nil
}

func (r *UserRepo) Insert(ctx context.Context, u *users.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		u.SSN, u.FirstName, u.LastName, u.PasswordHash, nullString(u.MembershipType),
	)
	return apperrors.Wrapf(writeErr(err), "[UserRepo Insert] %s", u.SSN)
}

// Update writes the profile fields, and the password hash when one is set.
func (r *UserRepo) Update(ctx context.Context, u *users.User) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET first_name = $2, last_name = $3, membership_type = $4,
		password_hash = COALESCE(NULLIF($5, ''), password_hash) WHERE ssn = $1`,
		u.SSN, u.FirstName, u.LastName, nullString(u.MembershipType), u.PasswordHash,
	)
	if err != nil {
		return apperrors.Wrapf(writeErr(err), "[UserRepo Update] %s", u.SSN)
	}
	return apperrors.Wrapf(expectRow(result), "[UserRepo Update] %s", u.SSN)
}

func (r *UserRepo) Delete(ctx context.Context, ssn string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE ssn = $1`, ssn)
	if err != nil {
		return apperrors.Wrapf(deleteErr(err), "[UserRepo Delete] %s", ssn)
	}
	return apperrors.Wrapf(expectRow(result), "[UserRepo Delete] %s", ssn)
}

func (r *UserRepo) List(ctx context.Context) ([]*users.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY ssn`)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[UserRepo List]")
	}
	return collect(rows, scanUser)
}

type PhoneRepo struct {
	db *sql.DB
}

func NewPhoneRepo(db *sql.DB) *PhoneRepo {
	return &PhoneRepo{db: db}
}

func scanPhone(row scanner) (*users.Phone, error) {
	var p users.Phone
	if err := row.Scan(&p.Number, &p.UserSSN); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PhoneRepo) Get(ctx context.Context, number string) (*users.Phone, error) {
	row := r.db.QueryRowContext(ctx, `SELECT phone, user_ssn FROM phones WHERE phone = $1`, number)
	p, err := scanPhone(row)
	if err != nil {
		return nil, apperrors.Wrapf(writeErr(err), "[PhoneRepo Get] %s", number)
	}
	return p, nil
}

func (r *PhoneRepo) Insert(ctx context.Context, p *users.Phone) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO phones (phone, user_ssn) VALUES ($1, $2)`, p.Number, p.UserSSN)
	return apperrors.Wrapf(writeErr(err), "[PhoneRepo Insert] %s", p.Number)
}

func (r *PhoneRepo) Delete(ctx context.Context, number string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM phones WHERE phone = $1`, number)
	if err != nil {
		return apperrors.Wrapf(deleteErr(err), "[PhoneRepo Delete] %s", number)
	}
	return apperrors.Wrapf(expectRow(result), "[PhoneRepo Delete] %s", number)
}

func (r *PhoneRepo) List(ctx context.Context) ([]*users.Phone, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT phone, user_ssn FROM phones ORDER BY phone`)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[PhoneRepo List]")
	}
	return collect(rows, scanPhone)
}

func (r *PhoneRepo) ListByUser(ctx context.Context, ssn string) ([]*users.Phone, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT phone, user_ssn FROM phones WHERE user_ssn = $1 ORDER BY phone`, ssn)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[PhoneRepo ListByUser] %s", ssn)
	}
	return collect(rows, scanPhone)
}
