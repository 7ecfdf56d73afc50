package library

import (
	"sort"
	"sync"
)

// Registry maps instance keys to loaded catalog instances. It is owned by
// the hosting shell; the core never reaches into global state.
type Registry struct {
	mu   sync.RWMutex
	libs map[string]*Library
}

func NewRegistry() *Registry {
	return &Registry{libs: make(map[string]*Library)}
}

func (r *Registry) Register(l *Library) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.libs[l.ID] = l
}

func (r *Registry) Deregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.libs, id)
}

// Resolve returns the instance for id, or any loaded instance when id is
// blank or unknown (lowest key for determinism). ErrNoLibrary when none are
// loaded.
func (r *Registry) Resolve(id string) (*Library, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id != "" {
		if l, ok := r.libs[id]; ok {
			return l, nil
		}
	}
	if len(r.libs) == 0 {
		return nil, ErrNoLibrary
	}
	keys := make([]string, 0, len(r.libs))
	for k := range r.libs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return r.libs[keys[0]], nil
}
