// Package pagination tracks the page cursor of admin listings.
package pagination

import (
	"github.com/dooficoin/doofigame/internal/client"
)

// Button labels
const (
	LabelPrev = "Anterior"
	LabelNext = "Próxima"
)

// Pager is the cursor of a paginated listing. The zero value is not usable;
// call New.
type Pager struct {
	page       int
	totalPages int
	perPage    int
}

// New returns a pager on page 1.
func New(perPage int) *Pager {
	if perPage < 1 {
		perPage = 1
	}
	return &Pager{page: 1, totalPages: 1, perPage: perPage}
}

// Page returns the current page (1-based).
func (p *Pager) Page() int { return p.page }

// TotalPages returns the last known page count (at least 1).
func (p *Pager) TotalPages() int { return p.totalPages }

// PerPage returns the page size.
func (p *Pager) PerPage() int { return p.perPage }

// CanPrev is false on the first page.
func (p *Pager) CanPrev() bool { return p.page > 1 }

// CanNext is false on the last page.
func (p *Pager) CanNext() bool { return p.page < p.totalPages }

// Next advances one page. It is a no-op on the last page.
func (p *Pager) Next() bool {
	if !p.CanNext() {
		return false
	}
	p.page++
	return true
}

// Prev goes back one page. It is a no-op on the first page.
func (p *Pager) Prev() bool {
	if !p.CanPrev() {
		return false
	}
	p.page--
	return true
}

// Reset returns to page 1, used when a filter changes.
func (p *Pager) Reset() {
	p.page = 1
}

// SetTotal records the page count reported by the backend. The current page
// is left alone so a re-fetch after a mutation stays where the user was.
func (p *Pager) SetTotal(totalPages int) {
	if totalPages < 1 {
		totalPages = 1
	}
	p.totalPages = totalPages
}

// Params builds the list query for the current page. Only the page varies
// between calls with the same filters.
func (p *Pager) Params(filters map[string]string) client.ListParams {
	return client.ListParams{
		Page:    p.page,
		PerPage: p.perPage,
		Filters: filters,
	}
}
