// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package inventory

import (
	"context"

	"github.com/abdelrahman21-arch/book-store-demo/internal/catalog"
)

// # Unit of Work

// Tx is the set of repositories bound to one atomic unit of work.
//
// Every repository obtained from the same Tx runs its statements inside the
// same transaction, so the entire batch commits or rolls back together.
type Tx interface {
	Authors() catalog.AuthorRepository
	Stores() catalog.StoreRepository
	Books() catalog.BookRepository
	StoreBooks() StoreBookRepository
}

// UnitOfWork opens one atomic transaction spanning an entire import batch.
type UnitOfWork interface {

	/*
		Run executes fn inside a single transaction.

		The transaction commits when fn returns nil and rolls back when fn
		returns an error (the error is passed through). Repositories handed to
		fn via [Tx] are only valid for the duration of the call.

		Parameters:
		  - context: context.Context
		  - fn: func(tx Tx) error (the batch body)

		Returns:
		  - error: fn's error, or commit/begin failures wrapped as storage faults
	*/
	Run(context context.Context, fn func(tx Tx) error) error
}
