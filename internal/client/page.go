package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Page is one page of a paginated admin listing.
type Page[T any] struct {
	Items       []T
	TotalPages  int
	CurrentPage int
	Total       int
}

// ListParams are the query parameters of a paginated listing. Filters with
// an empty value are still sent, matching the web client.
type ListParams struct {
	Page    int
	PerPage int
	Filters map[string]string
}

// Values encodes the params as a query string.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set(ParamPage, strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set(ParamPerPage, strconv.Itoa(p.PerPage))
	}
	for k, val := range p.Filters {
		v.Set(k, val)
	}
	return v
}

// decodePage pulls the rows stored under key plus the pagination counters.
// The total count is read from "total_<key>" with "total" as a fallback.
func decodePage[T any](raw map[string]json.RawMessage, key string) (Page[T], error) {
	var page Page[T]

	if rows, ok := raw[key]; ok && string(rows) != "null" {
		if err := json.Unmarshal(rows, &page.Items); err != nil {
			return page, fmt.Errorf("failed to decode %s: %w", key, err)
		}
	}
	if page.Items == nil {
		page.Items = []T{}
	}

	for _, field := range []struct {
		name string
		dst  *int
	}{
		{"total_pages", &page.TotalPages},
		{"current_page", &page.CurrentPage},
		{"total_" + key, &page.Total},
	} {
		if v, ok := raw[field.name]; ok {
			if err := json.Unmarshal(v, field.dst); err != nil {
				return page, fmt.Errorf("failed to decode %s: %w", field.name, err)
			}
		}
	}
	if page.Total == 0 {
		if v, ok := raw["total"]; ok {
			_ = json.Unmarshal(v, &page.Total)
		}
	}

	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	return page, nil
}
