// Package pagination implements the offset/limit window shared by every
// list endpoint, together with the next/previous navigation links.
//
// The scheme is deliberately stateless and cheap: "next" is always
// skip+take and is never clamped against the total row count, so a client
// may page past the end and simply receive an empty list.
package pagination

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/sakif/snippets-manager/internal/apperror"
)

const (
	// DefaultTake is the window size when the client doesn't supply one.
	DefaultTake = 10

	// MaxTake caps the window size so a single request can't pull the
	// whole table.
	MaxTake = 100
)

// Page is a parsed pagination window. It is echoed verbatim in list
// responses so the client can see which window was actually applied.
type Page struct {
	Skip      int    `json:"skip"`
	Take      int    `json:"take"`
	OrderBy   string `json:"orderBy,omitempty"`
	Direction string `json:"direction"`
}

// Links holds the navigation URLs computed from a Page.
type Links struct {
	Next string `json:"next"`
	Prev string `json:"prev"`
}

// FromQuery parses skip/take/orderBy/direction from a request query string.
//
// Defaults: skip=0, take=10, direction=asc. Non-numeric skip or take, and
// any direction other than asc/desc, are validation errors.
func FromQuery(q url.Values) (Page, error) {
	p := Page{
		Skip:      0,
		Take:      DefaultTake,
		OrderBy:   q.Get("orderBy"),
		Direction: "asc",
	}

	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Page{}, apperror.ValidationFailed("skip", fmt.Sprintf("invalid skip value %q", v))
		}
		p.Skip = n
	}

	if v := q.Get("take"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Page{}, apperror.ValidationFailed("take", fmt.Sprintf("invalid take value %q", v))
		}
		if n > MaxTake {
			n = MaxTake
		}
		p.Take = n
	}

	if v := q.Get("direction"); v != "" {
		if v != "asc" && v != "desc" {
			return Page{}, apperror.ValidationFailed("direction", fmt.Sprintf("invalid direction %q, want asc or desc", v))
		}
		p.Direction = v
	}

	return p, nil
}

// Links computes the next/previous navigation links for the given route
// name ("category", "snippet"). Previous is clamped at skip=0; next is
// intentionally unbounded.
func (p Page) Links(route string) Links {
	nextSkip := p.Skip + p.Take
	prevSkip := max(0, p.Skip-p.Take)

	sorting := ""
	if p.OrderBy != "" {
		sorting = fmt.Sprintf("&orderBy=%s&direction=%s", url.QueryEscape(p.OrderBy), p.Direction)
	}

	return Links{
		Next: fmt.Sprintf("/v1/%s?skip=%d&take=%d%s", route, nextSkip, p.Take, sorting),
		Prev: fmt.Sprintf("/v1/%s?skip=%d&take=%d%s", route, prevSkip, p.Take, sorting),
	}
}
