// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/apperr"
	"github.com/abdelrahman21-arch/book-store-demo/pkg/uuid"
)

/*
reconcileLine upserts the inventory line for a (store, book) pair with
increment semantics, inside the active unit of work.

Description: The pair's row is read under an exclusive lock so concurrent
batches referencing the same pair serialize. An existing line gets copies+1
and its price overwritten only when the incoming row supplied one; a missing
line is created with copies=1 and price defaulting to 0. When two concurrent
batches both observe "no row" for a brand-new pair, the loser's insert hits
the unique constraint and is retried once as the update path — the conflict
is never surfaced.

Parameters:
  - context: context.Context
  - repo: StoreBookRepository (bound to the batch transaction)
  - storeID: string (UUID)
  - bookID: string (UUID)
  - incomingPrice: *decimal.Decimal (nil when the row carried no price)

Returns:
  - bool: True when this call created the line, false when it updated one
  - error: Storage failures
*/
func reconcileLine(context context.Context, repo StoreBookRepository, storeID, bookID string, incomingPrice *decimal.Decimal) (bool, error) {

	line, err := repo.FindForUpdate(context, storeID, bookID)
	switch {
	case err == nil:
		return false, incrementLine(context, repo, line, incomingPrice)

	case apperr.IsNotFound(err):
		// Fall through to creation below.

	default:
		return false, err
	}

	created := &StoreBook{
		ID:      uuid.New(),
		StoreID: storeID,
		BookID:  bookID,
		Price:   incomingPrice,
		Copies:  1,
		SoldOut: false,
	}
	if created.Price == nil {
		zero := decimal.Zero
		created.Price = &zero
	}

	err = repo.Create(context, created)
	if err == nil {
		return true, nil
	}
	if !apperr.IsConflict(err) {
		return false, err
	}

	// Lost the creation race to a concurrent batch: the row exists now, so
	// the lock acquisition blocks until the winner commits, then we update.
	line, err = repo.FindForUpdate(context, storeID, bookID)
	if err != nil {
		return false, err
	}
	return false, incrementLine(context, repo, line, incomingPrice)
}

// incrementLine applies one import event to a locked line: copies += 1,
// price overwritten only by a present incoming price.
func incrementLine(context context.Context, repo StoreBookRepository, line *StoreBook, incomingPrice *decimal.Decimal) error {
	line.Copies++
	if incomingPrice != nil {
		line.Price = incomingPrice
	}
	return repo.Update(context, line)
}
