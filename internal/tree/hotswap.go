package tree

import (
	"sync"
)

// HotSwap holds the current Store and lets a freshly loaded one replace it.
// Stores are never edited in place; a changed declaration goes through
// Load and then Swap.
type HotSwap struct {
	mu      sync.RWMutex
	current *Store
}

func NewHotSwap(initial *Store) *HotSwap {
	return &HotSwap{current: initial}
}

// Swap atomically replaces the current store and returns the previous one.
func (h *HotSwap) Swap(next *Store) *Store {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.current
	h.current = next
	return prev
}

// Current returns the store in effect.
func (h *HotSwap) Current() *Store {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Root delegates to the current store.
func (h *HotSwap) Root() *Node {
	return h.Current().Root()
}

// GetNode delegates to the current store.
func (h *HotSwap) GetNode(id string) (*Node, error) {
	return h.Current().GetNode(id)
}

// Children delegates to the current store.
func (h *HotSwap) Children(id string) []*Node {
	return h.Current().Children(id)
}

// Parent delegates to the current store.
func (h *HotSwap) Parent(id string) (*Node, bool) {
	return h.Current().Parent(id)
}

// Ancestors delegates to the current store.
func (h *HotSwap) Ancestors(id string) ([]*Node, error) {
	return h.Current().Ancestors(id)
}

// ChildByTitle delegates to the current store.
func (h *HotSwap) ChildByTitle(parentID, title string) (*Node, int) {
	return h.Current().ChildByTitle(parentID, title)
}
