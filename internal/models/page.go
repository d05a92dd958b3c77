// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Page is one page of a paginated listing.
//
// Invariants: len(Items) <= the requested limit, TotalPages is
// ceil(TotalItems/limit), and CurrentPage is clamped to [1, TotalPages]
// (1 when there are no pages at all).
type Page struct {
	Items       []Document `json:"items"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	TotalItems  int        `json:"totalItems"`
	Source      Source     `json:"source"`
}

// TotalPages returns ceil(total/limit), or 0 when there is nothing to page.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// ClampPage bounds page to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Window returns the half-open [start, end) slice bounds of the requested
// page within total items. Pages past the end yield an empty window.
func Window(total, page, limit int) (start, end int) {
	if total <= 0 || page < 1 || limit <= 0 {
		return 0, 0
	}
	start = (page - 1) * limit
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}
	return start, end
}
