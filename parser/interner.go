package parser

import "sync"

// Interner implements string interning so that the many repeated account names,
// commodities and payees of a document share one allocation each.
//
// A single Interner is shared by all the workers parsing the blocks of a
// document, so access is guarded by a mutex.
type Interner struct {
	mu   sync.Mutex
	pool map[string]string
}

// NewInterner creates a new string interner with the given initial capacity.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical version of the string.
// If the string is already in the pool, returns the existing instance.
// Otherwise, adds it to the pool and returns it.
func (i *Interner) Intern(s string) string {
	if i == nil {
		return s
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// Size returns the number of unique strings in the intern pool.
func (i *Interner) Size() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.pool)
}
