package service

import "pdf-annotator/internal/domain"

// Navigator steps through the highlights matching the active filter,
// independent of the store's full order. The filtered view is recomputed
// against the live store on every move, not cached across filter changes, so
// the index is clamped defensively before stepping.
type Navigator struct {
	store        *HighlightStore
	router       *HashRouter
	currentIndex int
	activeFilter string
}

func NewNavigator(store *HighlightStore, router *HashRouter) *Navigator {
	return &Navigator{
		store:  store,
		router: router,
	}
}

// SetFilter changes the active label filter. The current index is left as is
// and re-synchronized on the next move.
func (n *Navigator) SetFilter(filter string) {
	n.activeFilter = filter
}

// Filter returns the active filter token.
func (n *Navigator) Filter() string {
	return n.activeFilter
}

// CurrentIndex returns the cursor position within the filtered view.
func (n *Navigator) CurrentIndex() int {
	return n.currentIndex
}

// Current returns the highlight under the cursor in the live filtered view.
func (n *Navigator) Current() (domain.Highlight, bool) {
	filtered := n.store.List(n.activeFilter)
	if len(filtered) == 0 || n.currentIndex < 0 || n.currentIndex >= len(filtered) {
		return domain.Highlight{}, false
	}
	return filtered[n.currentIndex], true
}

// Next advances the cursor with wraparound and updates the hash to the new
// current highlight. With an empty filtered view it is a no-op.
func (n *Navigator) Next() {
	filtered := n.store.List(n.activeFilter)
	if len(filtered) == 0 {
		return
	}
	n.clamp(len(filtered))

	n.currentIndex = (n.currentIndex + 1) % len(filtered)
	n.router.UpdateHash(filtered[n.currentIndex])
}

// Previous steps the cursor back, wrapping to the last element below zero.
func (n *Navigator) Previous() {
	filtered := n.store.List(n.activeFilter)
	if len(filtered) == 0 {
		return
	}
	n.clamp(len(filtered))

	n.currentIndex--
	if n.currentIndex < 0 {
		n.currentIndex = len(filtered) - 1
	}
	n.router.UpdateHash(filtered[n.currentIndex])
}

// Select moves the cursor to the given highlight's position in the current
// filtered view, as clicking it in the sidebar does. Ids outside the
// filtered view are ignored.
func (n *Navigator) Select(id string) {
	filtered := n.store.List(n.activeFilter)
	for i, h := range filtered {
		if h.ID == id {
			n.currentIndex = i
			n.router.UpdateHash(h)
			return
		}
	}
}

// clamp pulls a stale index back into bounds after the filtered view shrank.
func (n *Navigator) clamp(count int) {
	if n.currentIndex >= count {
		n.currentIndex = count - 1
	}
	if n.currentIndex < 0 {
		n.currentIndex = 0
	}
}
