// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package inventory

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Column names recognized in the uploaded CSV header.
const (
	FieldStoreName    = "store_name"
	FieldStoreAddress = "store_address"
	FieldBookName     = "book_name"
	FieldAuthorName   = "author_name"
	FieldPages        = "pages"
	FieldPrice        = "price"
)

// Record is one raw row extracted from the uploaded file: a mapping from
// header column name to the cell value as it appeared, plus the 1-based data
// record number for error reporting.
//
// Row counts data records in delivery order: the header is record 0 and blank
// lines are skipped without consuming a number, so Row can differ from the
// physical line number shown by a text editor.
type Record struct {
	Row    int               `json:"row"`
	Fields map[string]string `json:"fields"`
}

// Candidate is a normalized record ready for entity resolution: required
// names trimmed, blank optionals collapsed to nil, numerics parsed.
type Candidate struct {
	StoreName    string
	StoreAddress *string
	BookName     string
	AuthorName   string
	Pages        *int
	Price        *decimal.Decimal
}

// Candidate normalizes the raw record.
//
// Trimming happens here, not in the parser. Pages and price values that do
// not parse are treated as absent rather than rejected — the source files
// are loosely structured and only the three name fields are contractual.
func (record Record) Candidate() Candidate {
	candidate := Candidate{
		StoreName:  strings.TrimSpace(record.Fields[FieldStoreName]),
		BookName:   strings.TrimSpace(record.Fields[FieldBookName]),
		AuthorName: strings.TrimSpace(record.Fields[FieldAuthorName]),
	}

	if address := strings.TrimSpace(record.Fields[FieldStoreAddress]); address != "" {
		candidate.StoreAddress = &address
	}

	if raw := strings.TrimSpace(record.Fields[FieldPages]); raw != "" {
		if pages, err := strconv.Atoi(raw); err == nil && pages >= 0 {
			candidate.Pages = &pages
		}
	}

	if raw := strings.TrimSpace(record.Fields[FieldPrice]); raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil {
			candidate.Price = &price
		}
	}

	return candidate
}
