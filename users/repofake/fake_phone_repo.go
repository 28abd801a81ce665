package fakeuserrepo

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/users"
)

var _ users.PhoneRepo = (*FakePhoneRepo)(nil)

// FakePhoneRepo checks owners against a user repo the way the phone table's
// foreign key does.
type FakePhoneRepo struct {
	phones map[string]users.Phone
	users  users.UserRepo
	lock   sync.RWMutex
}

func NewFakePhoneRepo(userRepo users.UserRepo) *FakePhoneRepo {
	return &FakePhoneRepo{
		phones: make(map[string]users.Phone),
		users:  userRepo,
	}
}

func (pr *FakePhoneRepo) Get(_ context.Context, number string) (*users.Phone, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	p, ok := pr.phones[number]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (pr *FakePhoneRepo) Insert(ctx context.Context, phone *users.Phone) error {
	if _, err := pr.users.Get(ctx, phone.UserSSN); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidReference
		}
		return err
	}

	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.phones[phone.Number]; ok {
		return apperrors.ErrAlreadyExists
	}
	pr.phones[phone.Number] = *phone
	return nil
}

func (pr *FakePhoneRepo) Delete(_ context.Context, number string) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.phones[number]; !ok {
		return apperrors.ErrNotFound
	}
	delete(pr.phones, number)
	return nil
}

func (pr *FakePhoneRepo) List(_ context.Context) ([]*users.Phone, error) {
	return pr.filter(func(users.Phone) bool { return true }), nil
}

func (pr *FakePhoneRepo) ListByUser(_ context.Context, ssn string) ([]*users.Phone, error) {
	return pr.filter(func(p users.Phone) bool { return p.UserSSN == ssn }), nil
}

func (pr *FakePhoneRepo) filter(keep func(users.Phone) bool) []*users.Phone {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	list := make([]*users.Phone, 0)
	for _, v := range pr.phones {
		if keep(v) {
			p := v
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Number < list[j].Number
	})
	return list
}
