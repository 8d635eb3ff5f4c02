package audit

import (
	"sync"
)

func NewLocalStore() Store {
	return &local{
		store: make(map[string]*Record),
		mut:   &sync.RWMutex{},
	}
}

type local struct {
	store map[string]*Record
	mut   *sync.RWMutex
}

func (l *local) Put(record *Record) error {
	l.mut.Lock()
	defer l.mut.Unlock()

	l.store[record.ID] = record
	return nil
}

func (l *local) Get(id string) (*Record, error) {
	l.mut.RLock()
	defer l.mut.RUnlock()

	record, ok := l.store[id]
	if !ok {
		return nil, ErrNotFound
	}

	return record, nil
}

func (l *local) Ready() bool {
	return true
}
