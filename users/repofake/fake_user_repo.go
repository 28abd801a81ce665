package fakeuserrepo

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users map[string]users.User
	lock  sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users: make(map[string]users.User),
	}
}

func (ur *FakeUserRepo) Get(_ context.Context, ssn string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[ssn]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (ur *FakeUserRepo) Insert(_ context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.users[user.SSN]; ok {
		return apperrors.ErrAlreadyExists
	}
	ur.users[user.SSN] = *user
	return nil
}

func (ur *FakeUserRepo) Update(_ context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	existing, ok := ur.users[user.SSN]
	if !ok {
		return apperrors.ErrNotFound
	}
	updated := *user
	if updated.PasswordHash == "" {
		updated.PasswordHash = existing.PasswordHash
	}
	ur.users[user.SSN] = updated
	return nil
}

func (ur *FakeUserRepo) Delete(_ context.Context, ssn string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.users[ssn]; !ok {
		return apperrors.ErrNotFound
	}
	delete(ur.users, ssn)
	return nil
}

func (ur *FakeUserRepo) List(_ context.Context) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userList := make([]*users.User, 0, len(ur.users))
	for _, v := range ur.users {
		u := v
		userList = append(userList, &u)
	}
	sort.Slice(userList, func(i, j int) bool {
		return userList[i].SSN < userList[j].SSN
	})
	return userList, nil
}
