package listview

import (
	"fmt"
	"net/url"
	"strings"
)

// Location is the addressable location the view state is mirrored into.
// Replace must update the address in place without triggering any fetch.
type Location interface {
	Replace(query string)
	String() string
}

// Address is a Location backed by a base URL, such as the shareable web view link
type Address struct {
	base  url.URL
	query string
}

// NewAddress parses raw (which may already carry a query) into an Address
func NewAddress(raw string) (*Address, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid view URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid view URL %q: scheme and host are required", raw)
	}

	a := &Address{query: u.RawQuery}
	u.RawQuery = ""
	u.Fragment = ""
	a.base = *u
	return a, nil
}

// Replace swaps the query component
func (a *Address) Replace(query string) {
	a.query = strings.TrimPrefix(query, "?")
}

// Query returns the current query component
func (a *Address) Query() string {
	return a.query
}

// String returns the full link
func (a *Address) String() string {
	u := a.base
	u.RawQuery = a.query
	return u.String()
}

// DetailURL returns the link of the detail page for id
func (a *Address) DetailURL(id string) string {
	u := a.base
	escaped := strings.TrimSuffix(u.EscapedPath(), "/")
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + id
	u.RawPath = escaped + "/" + url.PathEscape(id)
	return u.String()
}

// memoryLocation holds the query for controllers constructed without a Location
type memoryLocation struct {
	query string
}

func (m *memoryLocation) Replace(query string) { m.query = query }
func (m *memoryLocation) String() string       { return "?" + m.query }
