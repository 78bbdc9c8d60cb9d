package domain

import "errors"

const (
	// DefaultPageLimit is applied when a fetch does not specify a limit.
	DefaultPageLimit = 1000
	// MaxPageLimit caps a single fetch; larger requests are rejected rather
	// than silently clamped.
	MaxPageLimit = 1000
)

var (
	ErrInvalidLimit  = errors.New("domain: limit out of range")
	ErrInvalidOffset = errors.New("domain: offset must not be negative")
)

// Page is a validated limit/offset pair. The zero value is not usable;
// construct through NewPage or use DefaultPage.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPage returns the first page with the default limit.
func DefaultPage() Page {
	return Page{Limit: DefaultPageLimit, Offset: 0}
}

// NewPage validates limit and offset. A zero limit selects the default.
func NewPage(limit, offset int) (Page, error) {
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 0 || limit > MaxPageLimit {
		return Page{}, ErrInvalidLimit
	}
	if offset < 0 {
		return Page{}, ErrInvalidOffset
	}
	return Page{Limit: limit, Offset: offset}, nil
}
