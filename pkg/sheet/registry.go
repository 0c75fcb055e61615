package sheet

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-drift/modalsheet/pkg/errors"
)

// Registry maps names to mounted sheets so an application can dismiss a
// sheet it holds no reference to. It is safe for concurrent use; dismissals
// are posted to each sheet's loop.
type Registry struct {
	mu     sync.Mutex
	sheets map[string]*Controller
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sheets: make(map[string]*Controller)}
}

// Register stores c under key. Re-registering a key replaces its sheet but
// keeps its registration order.
func (r *Registry) Register(key string, c *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sheets == nil {
		r.sheets = make(map[string]*Controller)
	}
	if _, exists := r.sheets[key]; !exists {
		r.order = append(r.order, key)
	}
	r.sheets[key] = c
}

// Unregister removes key.
func (r *Registry) Unregister(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(key)
}

// unregister removes key only while it still maps to c, so disposing a
// replaced sheet does not evict its successor.
func (r *Registry) unregister(key string, c *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sheets[key] == c {
		r.remove(key)
	}
}

func (r *Registry) remove(key string) {
	if _, ok := r.sheets[key]; !ok {
		return
	}
	delete(r.sheets, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Lookup returns the sheet registered under key.
func (r *Registry) Lookup(key string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.sheets[key]
	return c, ok
}

// Keys returns the registered names, oldest first.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Dismiss closes the sheet registered under key. It reports whether one was found.
func (r *Registry) Dismiss(key string) bool {
	c, ok := r.Lookup(key)
	if ok {
		c.loop.Post(c.Close)
	}
	return ok
}

// DismissLast closes the most recently registered sheet.
func (r *Registry) DismissLast() bool {
	r.mu.Lock()
	var c *Controller
	if n := len(r.order); n > 0 {
		c = r.sheets[r.order[n-1]]
	}
	r.mu.Unlock()
	if c == nil {
		return false
	}
	c.loop.Post(c.Close)
	return true
}

// DismissAll closes every registered sheet.
func (r *Registry) DismissAll() {
	r.mu.Lock()
	sheets := make([]*Controller, 0, len(r.order))
	for _, key := range r.order {
		sheets = append(sheets, r.sheets[key])
	}
	r.mu.Unlock()
	for _, c := range sheets {
		c.loop.Post(c.Close)
	}
}

type registryKey struct{}

var errNoRegistry = fmt.Errorf("no sheet registry in context")

// WithRegistry returns a context carrying r.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, r)
}

// RegistryFromContext returns the registry attached with WithRegistry.
func RegistryFromContext(ctx context.Context) (*Registry, error) {
	if r, ok := ctx.Value(registryKey{}).(*Registry); ok && r != nil {
		return r, nil
	}
	return nil, errors.New("sheet.RegistryFromContext", errors.KindUsage, errNoRegistry)
}

// MustRegistry is like RegistryFromContext but panics when no registry is attached.
func MustRegistry(ctx context.Context) *Registry {
	r, err := RegistryFromContext(ctx)
	if err != nil {
		panic(err)
	}
	return r
}
