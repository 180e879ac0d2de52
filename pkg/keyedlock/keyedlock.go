// Package keyedlock - мьютекс на ключ. Запись карты живет, пока замок кто-то держит или ждет.
package keyedlock

import "sync"

type Mutex[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New[K comparable]() *Mutex[K] {
	return &Mutex[K]{locks: make(map[K]*entry)}
}

// Lock захватывает замок для key и возвращает функцию освобождения.
func (m *Mutex[K]) Lock(key K) func() {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		m.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(m.locks, key)
		}
		m.mu.Unlock()
	}
}

// Len - число ключей с живыми замками.
func (m *Mutex[K]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
