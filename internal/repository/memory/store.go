// Package memory provides in-process implementations of the repository ports.
// Records are kept in insertion order and copied on the way in and out so
// callers never share state with the store.
package memory

import (
	"sync"
	"time"
)

// ordered is an insertion-ordered map guarded by a RWMutex.
type ordered[T any] struct {
	mu    sync.RWMutex
	order []string
	items map[string]T
}

func newOrdered[T any]() *ordered[T] {
	return &ordered[T]{items: make(map[string]T)}
}

func (o *ordered[T]) put(id string, v T) {
	if _, ok := o.items[id]; !ok {
		o.order = append(o.order, id)
	}
	o.items[id] = v
}

func (o *ordered[T]) remove(id string) bool {
	if _, ok := o.items[id]; !ok {
		return false
	}
	delete(o.items, id)
	for i, k := range o.order {
		if k == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	return true
}

func (o *ordered[T]) values(keep func(T) bool) []T {
	out := make([]T, 0, len(o.order))
	for _, id := range o.order {
		v := o.items[id]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }
