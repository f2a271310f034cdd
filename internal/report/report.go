// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

/*
Package report builds per-store inventory reports and renders them as
downloadable documents.

A report is a point-in-time aggregation over one store's inventory lines:

  - the five priciest books currently carried by the store, and
  - the five authors with the most distinct in-stock titles at the store.

Rendering is behind the [Renderer] port so the aggregation logic stays
independent of the output format; the default renderer produces PDF.
*/
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abdelrahman21-arch/book-store-demo/internal/catalog"
)

// TopCount is the number of entries in each report ranking.
const TopCount = 5

// # Report Model

// PricedLine is one entry of the priciest-books ranking.
type PricedLine struct {
	BookName   string           `json:"bookName"`
	AuthorName string           `json:"authorName"`
	Price      *decimal.Decimal `json:"price"`
	Copies     int              `json:"copies"`
}

// PriceDisplay renders the price with two decimal places. Lines created
// without a price display as "0.00".
func (line PricedLine) PriceDisplay() string {
	if line.Price == nil {
		return "0.00"
	}
	return line.Price.StringFixed(2)
}

// ProlificAuthor is one entry of the authors-by-distinct-titles ranking.
type ProlificAuthor struct {
	Name   string `json:"name"`
	Titles int    `json:"titles"`
}

// Report is the aggregated state of one store at generation time.
type Report struct {
	Store           *catalog.Store   `json:"store"`
	GeneratedAt     time.Time        `json:"generatedAt"`
	PriciestBooks   []PricedLine     `json:"priciestBooks"`
	ProlificAuthors []ProlificAuthor `json:"prolificAuthors"`
}

// Document is a rendered report ready for download.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// # Ports

// Repository reads the aggregations a store report is built from.
type Repository interface {

	/*
		PriciestBooks returns the store's inventory lines ordered by price
		descending, at most limit entries.

		Ties and unpriced lines: equal prices are broken by inventory line
		ID ascending (IDs are time-ordered UUIDs, so the ordering is stable
		across identical requests), and lines without a price sort last.

		Parameters:
		  - context: context.Context
		  - storeID: string (UUID)
		  - limit: int

		Returns:
		  - []PricedLine: Ranking entries, possibly empty
		  - error: Storage failures
	*/
	PriciestBooks(context context.Context, storeID string, limit int) ([]PricedLine, error)

	/*
		ProlificAuthors returns the authors with the most distinct titles
		carried by the store, at most limit entries. Only lines with at
		least one copy count; ties are broken by author name ascending.

		Parameters:
		  - context: context.Context
		  - storeID: string (UUID)
		  - limit: int

		Returns:
		  - []ProlificAuthor: Ranking entries, possibly empty
		  - error: Storage failures
	*/
	ProlificAuthors(context context.Context, storeID string, limit int) ([]ProlificAuthor, error)
}

// Renderer turns a report into a binary document.
type Renderer interface {
	Render(report *Report) ([]byte, error)
	ContentType() string
}

// DocumentCache stores rendered documents keyed by store and generation day.
//
// Both methods are best-effort: a miss or a cache failure must never fail
// the report request itself.
type DocumentCache interface {
	Get(context context.Context, storeID string, day time.Time) ([]byte, bool)
	Set(context context.Context, storeID string, day time.Time, body []byte) error
}
