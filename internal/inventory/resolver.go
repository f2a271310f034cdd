// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package inventory

import (
	"context"

	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/validate"
)

// resolution carries the identifiers produced by resolving one candidate
// record, plus created-flags feeding the batch summary counters.
type resolution struct {
	storeID string
	bookID  string

	createdAuthor bool
	createdStore  bool
	createdBook   bool
}

/*
resolveEntities validates a candidate and resolves or creates its Author,
Store, and Book by natural-key lookup within the active unit of work.

Description: Resolution order is author → store → book because the book's
natural key needs the author's identifier. No entity is ever updated here;
existing rows are returned untouched (pages only lands when the book row is
first created).

Parameters:
  - context: context.Context
  - tx: Tx (repositories bound to the batch transaction)
  - candidate: Candidate (normalized row)

Returns:
  - resolution: Resolved identifiers and created-flags
  - error: VALIDATION_ERROR before any mutation when a required name is
    missing; storage failures otherwise
*/
func resolveEntities(context context.Context, tx Tx, candidate Candidate) (resolution, error) {
	var resolved resolution

	// Required-field gate: reject BEFORE any row is written.
	validator := &validate.Validator{}
	validator.Required(FieldStoreName, candidate.StoreName)
	validator.Required(FieldBookName, candidate.BookName)
	validator.Required(FieldAuthorName, candidate.AuthorName)
	if err := validator.Err(); err != nil {
		return resolved, err
	}

	author, createdAuthor, err := tx.Authors().FindOrCreate(context, candidate.AuthorName)
	if err != nil {
		return resolved, err
	}

	store, createdStore, err := tx.Stores().FindOrCreate(context, candidate.StoreName, candidate.StoreAddress)
	if err != nil {
		return resolved, err
	}

	book, createdBook, err := tx.Books().FindOrCreate(context, candidate.BookName, candidate.Pages, author.ID)
	if err != nil {
		return resolved, err
	}

	resolved.storeID = store.ID
	resolved.bookID = book.ID
	resolved.createdAuthor = createdAuthor
	resolved.createdStore = createdStore
	resolved.createdBook = createdBook

	return resolved, nil
}
