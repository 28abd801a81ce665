package postgres

import (
	"context"
	"database/sql"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/memberships"
)

var _ memberships.Repo = (*MembershipRepo)(nil)

type MembershipRepo struct {
	db *sql.DB
}

func NewMembershipRepo(db *sql.DB) *MembershipRepo {
	return &MembershipRepo{db: db}
}

func scanMembership(row scanner) (*memberships.Type, error) {
	var t memberships.Type
	if err := row.Scan(&t.Sign, &t.Fee, &t.TypeName, &t.Plan); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *MembershipRepo) Get(ctx context.Context, sign string) (*memberships.Type, error) {
	row := r.db.QueryRowContext(ctx, `SELECT sign, fee, type_name, plan FROM membership_types WHERE sign = $1`, sign)
	t, err := scanMembership(row)
	if err != nil {
		return nil, apperrors.Wrapf(writeErr(err), "[MembershipRepo Get] %s", sign)
	}
	return t, nil
}

func (r *MembershipRepo) Insert(ctx context.Context, t *memberships.Type) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO membership_types (sign, fee, type_name, plan) VALUES ($1, $2, $3, $4)`,
		t.Sign, t.Fee, t.TypeName, t.Plan,
	)
	return apperrors.Wrapf(writeErr(err), "[MembershipRepo Insert] %s", t.Sign)
}

func (r *MembershipRepo) Update(ctx context.Context, t *memberships.Type) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE membership_types SET fee = $2, type_name = $3, plan = $4 WHERE sign = $1`,
		t.Sign, t.Fee, t.TypeName, t.Plan,
	)
	if err != nil {
		return apperrors.Wrapf(writeErr(err), "[MembershipRepo Update] %s", t.Sign)
	}
	return apperrors.Wrapf(expectRow(result), "[MembershipRepo Update] %s", t.Sign)
}

func (r *MembershipRepo) Delete(ctx context.Context, sign string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM membership_types WHERE sign = $1`, sign)
	if err != nil {
		return apperrors.Wrapf(deleteErr(err), "[MembershipRepo Delete] %s", sign)
	}
	return apperrors.Wrapf(expectRow(result), "[MembershipRepo Delete] %s", sign)
}

func (r *MembershipRepo) List(ctx context.Context) ([]*memberships.Type, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT sign, fee, type_name, plan FROM membership_types ORDER BY sign`)
	if err != nil {
		return nil, apperrors.Wrapf(err, "[MembershipRepo List]")
	}
	return collect(rows, scanMembership)
}
