package service

import (
	"strings"

	"pdf-annotator/internal/domain"
)

// hashPrefix is the fixed namespace that distinguishes highlight deep-links
// from other fragment uses.
const hashPrefix = "highlight-"

// HashRouter mirrors the focused highlight into a URL fragment of the shape
// `highlight-<id>`, so reloading or sharing a link restores focus and
// back/forward navigation re-triggers scroll-to-highlight.
//
// Fragment-change notifications are delivered synchronously to subscribers in
// registration order. Subscribers must tolerate ids that no longer resolve:
// a change event can arrive after the store has been reset for a new
// document, and that is a normal, silent outcome.
type HashRouter struct {
	fragment  string
	listeners []func(fragment string)
}

func NewHashRouter() *HashRouter {
	return &HashRouter{}
}

// UpdateHash sets the fragment to encode the highlight's id.
func (r *HashRouter) UpdateHash(highlight domain.Highlight) {
	r.setFragment(hashPrefix + highlight.ID)
}

// ResetHash clears the fragment. Called when the renderer reports the user
// scrolled away from all tracked highlights.
func (r *HashRouter) ResetHash() {
	r.setFragment("")
}

// Navigate sets the fragment directly, as browser back/forward or a pasted
// deep link would.
func (r *HashRouter) Navigate(fragment string) {
	r.setFragment(fragment)
}

// Fragment returns the current fragment.
func (r *HashRouter) Fragment() string {
	return r.fragment
}

// ParseIDFromHash strips the namespace prefix from the current fragment. It
// returns an empty string when the fragment is absent or not a highlight
// deep-link.
func (r *HashRouter) ParseIDFromHash() string {
	if !strings.HasPrefix(r.fragment, hashPrefix) {
		return ""
	}
	return r.fragment[len(hashPrefix):]
}

// OnChange registers a listener invoked on every fragment mutation,
// including Navigate calls from browser history.
func (r *HashRouter) OnChange(listener func(fragment string)) {
	r.listeners = append(r.listeners, listener)
}

func (r *HashRouter) setFragment(fragment string) {
	r.fragment = fragment
	for _, listener := range r.listeners {
		listener(fragment)
	}
}
