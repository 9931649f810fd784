package repository

// arena keeps one entity kind keyed by id, remembering insertion order.
// Ids come from a monotonic counter and are never reused. Callers hold the
// owning store's lock.
type arena[T any] struct {
	seq   int64
	items map[int64]T
	order []int64
}

func newArena[T any]() *arena[T] {
	return &arena[T]{items: make(map[int64]T)}
}

func (a *arena[T]) nextID() int64 {
	a.seq++
	return a.seq
}

func (a *arena[T]) put(id int64, item T) {
	if _, exists := a.items[id]; !exists {
		a.order = append(a.order, id)
	}
	a.items[id] = item
}

func (a *arena[T]) get(id int64) (T, bool) {
	item, ok := a.items[id]
	return item, ok
}

func (a *arena[T]) remove(id int64) bool {
	if _, ok := a.items[id]; !ok {
		return false
	}
	delete(a.items, id)
	for i, v := range a.order {
		if v == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return true
}

// filter returns matching items in insertion order. The result is never nil.
func (a *arena[T]) filter(match func(T) bool) []T {
	out := make([]T, 0)
	for _, id := range a.order {
		if item := a.items[id]; match(item) {
			out = append(out, item)
		}
	}
	return out
}

func (a *arena[T]) some(match func(T) bool) bool {
	for _, id := range a.order {
		if match(a.items[id]) {
			return true
		}
	}
	return false
}
