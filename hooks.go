package servicemap

import (
	"sync"

	"github.com/agentstation/servicemap/pkg/hierarchy"
)

// BuiltHook is called after a new tree has been built, linked and swapped in.
type BuiltHook func(tree *hierarchy.Tree, stats hierarchy.Stats)

// hooks manages build callbacks
type hooks struct {
	mu      sync.RWMutex
	onBuilt []BuiltHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnBuilt registers a callback for completed builds
func (h *hooks) OnBuilt(fn BuiltHook) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBuilt = append(h.onBuilt, fn)
}

func (h *hooks) triggerBuilt(tree *hierarchy.Tree) {
	h.mu.RLock()
	fns := make([]BuiltHook, len(h.onBuilt))
	copy(fns, h.onBuilt)
	h.mu.RUnlock()

	if len(fns) == 0 {
		return
	}
	stats := tree.Stats()
	for _, fn := range fns {
		fn(tree, stats)
	}
}
