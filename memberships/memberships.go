// Package memberships holds the membership plans a user can belong to. The
// sentinel signs "ad" and "in" double as role tags.
package memberships

import (
	"context"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/users"
)

type Type struct {
	Sign     string  `json:"sign"`
	Fee      float64 `json:"fee"`
	TypeName string  `json:"typeName"`
	Plan     string  `json:"plan"`
}

// Update is a partial update. Nil fields are left unchanged.
type Update struct {
	Fee      *float64 `json:"fee"`
	TypeName *string  `json:"typeName"`
	Plan     *string  `json:"plan"`
}

func (t *Type) Validate() error {
	switch {
	case t.Sign == "" || len(t.Sign) > 2:
		return apperrors.Validationf("sign must be one or two characters")
	case t.Fee < 0 || t.Fee >= 100000:
		return apperrors.Validationf("fee must be between 0 and 99999.99")
	case len(t.TypeName) > 10:
		return apperrors.Validationf("typeName is limited to 10 characters")
	case len(t.Plan) > 8:
		return apperrors.Validationf("plan is limited to 8 characters")
	}
	return nil
}

func (t *Type) Role() users.Role {
	return users.RoleFromMembership(t.Sign)
}

// Selectable reports whether the plan can be picked at self-registration.
func (t *Type) Selectable() bool {
	return !users.IsSentinelMembership(t.Sign)
}

// Repo returns apperrors.ErrNotFound for unknown signs and
// apperrors.ErrAlreadyExists for duplicate inserts.
type Repo interface {
	Get(ctx context.Context, sign string) (*Type, error)
	Insert(ctx context.Context, t *Type) error
	Update(ctx context.Context, t *Type) error
	Delete(ctx context.Context, sign string) error
	List(ctx context.Context) ([]*Type, error)
}

// Exists reports whether sign names a stored membership type.
func Exists(ctx context.Context, repo Repo, sign string) (bool, error) {
	if _, err := repo.Get(ctx, sign); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
