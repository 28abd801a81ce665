package fakegymrepo

import (
	"sort"
	"sync"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
)

// table is a locked map of row copies ordered by key on list.
type table[K comparable, V any] struct {
	rows map[K]V
	less func(a, b K) bool
	lock sync.RWMutex
}

func newTable[K comparable, V any](less func(a, b K) bool) *table[K, V] {
	return &table[K, V]{rows: make(map[K]V), less: less}
}

func (t *table[K, V]) get(k K) (*V, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	v, ok := t.rows[k]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &v, nil
}

func (t *table[K, V]) insert(k K, v V) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if _, ok := t.rows[k]; ok {
		return apperrors.ErrAlreadyExists
	}
	t.rows[k] = v
	return nil
}

func (t *table[K, V]) update(k K, v V) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if _, ok := t.rows[k]; !ok {
		return apperrors.ErrNotFound
	}
	t.rows[k] = v
	return nil
}

func (t *table[K, V]) delete(k K) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if _, ok := t.rows[k]; !ok {
		return apperrors.ErrNotFound
	}
	delete(t.rows, k)
	return nil
}

func (t *table[K, V]) list(keep func(V) bool) []*V {
	t.lock.RLock()
	defer t.lock.RUnlock()

	keys := make([]K, 0, len(t.rows))
	for k, v := range t.rows {
		if keep == nil || keep(v) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return t.less(keys[i], keys[j]) })

	out := make([]*V, 0, len(keys))
	for _, k := range keys {
		v := t.rows[k]
		out = append(out, &v)
	}
	return out
}

func lessString(a, b string) bool { return a < b }
func lessInt64(a, b int64) bool   { return a < b }
