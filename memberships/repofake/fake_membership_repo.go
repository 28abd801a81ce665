package fakemembershiprepo

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/memberships"
)

var _ memberships.Repo = (*FakeMembershipRepo)(nil)

type FakeMembershipRepo struct {
	types map[string]memberships.Type
	lock  sync.RWMutex
}

func NewFakeMembershipRepo() *FakeMembershipRepo {
	return &FakeMembershipRepo{
		types: make(map[string]memberships.Type),
	}
}

func (mr *FakeMembershipRepo) Get(_ context.Context, sign string) (*memberships.Type, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	t, ok := mr.types[sign]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (mr *FakeMembershipRepo) Insert(_ context.Context, t *memberships.Type) error {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	if _, ok := mr.types[t.Sign]; ok {
		return apperrors.ErrAlreadyExists
	}
	mr.types[t.Sign] = *t
	return nil
}

func (mr *FakeMembershipRepo) Update(_ context.Context, t *memberships.Type) error {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	if _, ok := mr.types[t.Sign]; !ok {
		return apperrors.ErrNotFound
	}
	mr.types[t.Sign] = *t
	return nil
}

func (mr *FakeMembershipRepo) Delete(_ context.Context, sign string) error {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	if _, ok := mr.types[sign]; !ok {
		return apperrors.ErrNotFound
	}
	delete(mr.types, sign)
	return nil
}

func (mr *FakeMembershipRepo) List(_ context.Context) ([]*memberships.Type, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	list := make([]*memberships.Type, 0, len(mr.types))
	for _, v := range mr.types {
		t := v
		list = append(list, &t)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Sign < list[j].Sign
	})
	return list, nil
}
