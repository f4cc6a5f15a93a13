package usecase

import "sync"

// gameLocks serializes read-modify-write cycles on one game within the process.
type gameLocks struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{
		locks: make(map[string]*gameLock),
	}
}

// lock - blocks until gameID is free and returns its unlock function.
func (that *gameLocks) lock(gameID string) func() {
	that.mu.Lock()
	l, ok := that.locks[gameID]
	if !ok {
		l = &gameLock{}
		that.locks[gameID] = l
	}
	l.refs++
	that.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		that.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(that.locks, gameID)
		}
		that.mu.Unlock()
	}
}

func (that *gameLocks) len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}
