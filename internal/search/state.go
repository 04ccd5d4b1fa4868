// Package search holds the search-as-you-type contract of the contact sidebar:
// which history discipline a search keystroke uses, when loading indicators
// show, and what the search field displays.
package search

import (
	"net/url"
)

// QueryFrom returns the query parameter of u, or nil when it is absent.
// A present but empty parameter yields a pointer to "".
func QueryFrom(u *url.URL) *string {
	if u == nil {
		return nil
	}
	values := u.Query()
	if !values.Has(QueryParam) {
		return nil
	}
	q := values.Get(QueryParam)
	return &q
}

// StateOf classifies the currently rendered query
func StateOf(query *string) State {
	if query == nil {
		return Idle
	}
	return Searching
}

// IsFirstSearch reports whether the rendered location had no query parameter.
// It is strict on nil: an empty query is already a search.
func IsFirstSearch(current *string) bool {
	return current == nil
}

// OnChange builds the navigation a search form change triggers. current is the
// query of the location being displayed, not of any in-flight navigation. The
// form fields become the new query string of path. The first search pushes a
// history entry and every later one replaces it.
func OnChange(current *string, path string, fields url.Values) Request {
	action := Replace
	if IsFirstSearch(current) {
		action = Push
	}
	if path == "" {
		path = "/"
	}
	return Request{
		Location: &url.URL{Path: path, RawQuery: fields.Encode()},
		Action:   action,
	}
}

// IsSearching reports whether the in-flight navigation targets a URL with a query parameter
func IsSearching(nav Navigation) bool {
	return nav.Location != nil && nav.Location.Query().Has(QueryParam)
}

// ShowLoading reports whether the search field, spinner and detail pane show their loading state
func ShowLoading(nav Navigation) bool {
	return IsSearching(nav) && nav.Phase == PhaseLoading
}

// InputValue is the value the search field displays for a resolved query
func InputValue(query *string) string {
	if query == nil {
		return ""
	}
	return *query
}
