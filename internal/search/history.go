package search

import (
	"net/url"
	"sync"
)

// History is a browser-style session history stack
type History struct {
	mu      sync.RWMutex
	entries []*url.URL
	index   int
}

// NewHistory creates a history whose only entry is start
func NewHistory(start *url.URL) *History {
	if start == nil {
		start = &url.URL{Path: "/"}
	}
	return &History{entries: []*url.URL{cloneURL(start)}}
}

// Navigate records u according to action. Pop entries are ignored since
// Back and Forward already moved the index.
func (h *History) Navigate(u *url.URL, action Action) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch action {
	case Replace:
		h.entries[h.index] = cloneURL(u)
	case Push:
		h.entries = append(h.entries[:h.index+1:h.index+1], cloneURL(u))
		h.index++
	}
}

// Back moves one entry back and returns it
func (h *History) Back() (*url.URL, bool) {
	return h.Go(-1)
}

// Forward moves one entry forward and returns it
func (h *History) Forward() (*url.URL, bool) {
	return h.Go(1)
}

// Go moves delta entries and returns the entry it lands on. A move past
// either end leaves the index where it was.
func (h *History) Go(delta int) (*url.URL, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := h.index + delta
	if delta == 0 || next < 0 || next >= len(h.entries) {
		return nil, false
	}
	h.index = next
	return cloneURL(h.entries[h.index]), true
}

// Current returns the entry being displayed
func (h *History) Current() *url.URL {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return cloneURL(h.entries[h.index])
}

// Len returns the number of entries
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Index returns the position of the current entry
func (h *History) Index() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.index
}

// Entries returns a copy of the stack as strings, oldest first
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.String()
	}
	return out
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
