package workflow

import "sync"

// ClientLocks serializes profile writes per client. The auto-saver and the
// PDF workflow share one instance, so a manual generation always waits for
// an in-flight auto-save on the same client instead of racing it.
type ClientLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewClientLocks creates an empty lock set.
func NewClientLocks() *ClientLocks {
	return &ClientLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for clientID and returns its release function.
func (cl *ClientLocks) Lock(clientID string) func() {
	cl.mu.Lock()
	lock, ok := cl.locks[clientID]
	if !ok {
		lock = &sync.Mutex{}
		cl.locks[clientID] = lock
	}
	cl.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
