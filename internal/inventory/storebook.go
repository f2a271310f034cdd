// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

/*
Package inventory implements the bulk inventory import pipeline: parsing an
uploaded CSV into candidate records, resolving catalog entities, and
reconciling store inventory lines inside one atomic unit of work.

# Pipeline

	raw bytes → Parser → candidate records → Service.Import
	  → one transaction: resolve (catalog) → reconcile (store_books) per row
	  → Summary (counters + per-row rejections)

Row-level validation problems never fail an upload; storage faults roll the
whole batch back.
*/
package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// # Domain Entities

// StoreBook is the inventory line joining a store and a book — the only
// mutable entity touched by the import.
//
// Copies is a running total of import events for the pair: every valid row
// referencing the pair adds one, across all imports to date. Re-importing an
// identical file therefore inflates copies further; this mirrors the
// observed behavior of the original system and is flagged for product
// clarification rather than silently deduplicated.
type StoreBook struct {
	ID      string           `json:"id"`
	StoreID string           `json:"storeId"`
	BookID  string           `json:"bookId"`
	Price   *decimal.Decimal `json:"price,omitempty"`
	Copies  int              `json:"copies"`
	SoldOut bool             `json:"soldOut"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// # Data Access Contracts

// StoreBookRepository is the data access contract for inventory lines.
//
// All three methods must be called inside an active unit of work; the
// read-then-write on a single pair is serialized by FindForUpdate's lock.
type StoreBookRepository interface {

	/*
		FindForUpdate returns the inventory line for the pair and acquires an
		exclusive row lock (SELECT ... FOR UPDATE) so concurrent batches
		increment the same pair serially.

		Parameters:
		  - context: context.Context
		  - storeID: string (UUID)
		  - bookID: string (UUID)

		Returns:
		  - *StoreBook: The locked line
		  - error: apperr.NotFound when no line exists for the pair
	*/
	FindForUpdate(context context.Context, storeID, bookID string) (*StoreBook, error)

	/*
		Create inserts a new inventory line.

		Returns:
		  - error: apperr.Conflict when a concurrent transaction created the
		    pair first (unique constraint backstop); the caller retries as an
		    update. Any other error is a storage fault.
	*/
	Create(context context.Context, line *StoreBook) error

	/*
		Update persists copies/price changes to an existing line.

		Returns:
		  - error: Storage failures
	*/
	Update(context context.Context, line *StoreBook) error
}
