// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

/*
Package inventory — PostgreSQL implementation of the unit of work and the
inventory line repository.

The unit of work owns the batch transaction: repositories handed to the
batch body are bound to the open pgx.Tx, so catalog inserts and inventory
upserts commit or roll back together. Per-pair serialization uses
SELECT ... FOR UPDATE, with the (store_id, book_id) unique constraint as the
backstop for the create/create race between concurrent batches.
*/
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/abdelrahman21-arch/book-store-demo/internal/catalog"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/apperr"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/database/schema"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/dberr"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/postgres"
)

// # Unit of Work

// pgUnitOfWork implements [UnitOfWork] over a pgx connection pool.
type pgUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork constructs the PostgreSQL backed unit of work.
func NewUnitOfWork(pool *pgxpool.Pool) UnitOfWork {
	return &pgUnitOfWork{pool: pool}
}

/*
Run executes fn inside one database transaction.

Description: Commits when fn returns nil; any error from fn (or from commit
itself) rolls the transaction back and is returned to the caller. The
deferred rollback is a no-op after a successful commit.
*/
func (uow *pgUnitOfWork) Run(context context.Context, fn func(tx Tx) error) error {
	transaction, err := uow.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	if err := fn(&pgTx{db: transaction}); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit batch transaction: %w", err)
	}

	return nil
}

// pgTx hands out repositories bound to one open transaction.
type pgTx struct {
	db pgx.Tx
}

func (tx *pgTx) Authors() catalog.AuthorRepository { return catalog.NewAuthorRepository(tx.db) }
func (tx *pgTx) Stores() catalog.StoreRepository   { return catalog.NewStoreRepository(tx.db) }
func (tx *pgTx) Books() catalog.BookRepository     { return catalog.NewBookRepository(tx.db) }
func (tx *pgTx) StoreBooks() StoreBookRepository   { return NewStoreBookRepository(tx.db) }

// # StoreBook Repository

// storeBookRepository implements [StoreBookRepository] using pgx.
type storeBookRepository struct {
	db postgres.Querier
}

// NewStoreBookRepository constructs a PostgreSQL backed inventory line store.
func NewStoreBookRepository(db postgres.Querier) StoreBookRepository {
	return &storeBookRepository{db: db}
}

/*
FindForUpdate loads the line for the pair under an exclusive row lock.

Description: FOR UPDATE scopes the lock to the single (store_id, book_id)
row, so unrelated pairs are never serialized against each other. The lock is
held until the surrounding batch transaction ends.

Returns:
  - *StoreBook: The locked line
  - error: apperr.NotFound when the pair has no line yet
*/
func (repository *storeBookRepository) FindForUpdate(context context.Context, storeID, bookID string) (*StoreBook, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s::text, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
		FOR UPDATE
	`,
		schema.InventoryStoreBook.ID, schema.InventoryStoreBook.StoreID, schema.InventoryStoreBook.BookID,
		schema.InventoryStoreBook.Price, schema.InventoryStoreBook.Copies, schema.InventoryStoreBook.SoldOut,
		schema.InventoryStoreBook.CreatedAt, schema.InventoryStoreBook.UpdatedAt,
		schema.InventoryStoreBook.Table,
		schema.InventoryStoreBook.StoreID, schema.InventoryStoreBook.BookID,
	)

	var line StoreBook
	var rawPrice *string

	err := repository.db.QueryRow(context, query, storeID, bookID).Scan(
		&line.ID,
		&line.StoreID,
		&line.BookID,
		&rawPrice,
		&line.Copies,
		&line.SoldOut,
		&line.CreatedAt,
		&line.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("StoreBook")
		}
		return nil, fmt.Errorf("postgres: failed to lock inventory line: %w", err)
	}

	line.Price, err = parsePrice(rawPrice)
	if err != nil {
		return nil, err
	}

	return &line, nil
}

/*
Create inserts a new inventory line for a pair.

Returns:
  - error: apperr.Conflict when the (store_id, book_id) unique constraint
    fires (a concurrent batch created the pair first); other failures are
    wrapped storage faults
*/
func (repository *storeBookRepository) Create(context context.Context, line *StoreBook) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s
	`,
		schema.InventoryStoreBook.Table,
		schema.InventoryStoreBook.ID, schema.InventoryStoreBook.StoreID, schema.InventoryStoreBook.BookID,
		schema.InventoryStoreBook.Price, schema.InventoryStoreBook.Copies, schema.InventoryStoreBook.SoldOut,
		schema.InventoryStoreBook.CreatedAt, schema.InventoryStoreBook.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		line.ID,
		line.StoreID,
		line.BookID,
		line.Price,
		line.Copies,
		line.SoldOut,
	).Scan(&line.CreatedAt, &line.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Inventory line already exists for this store/book pair")
		}
		return fmt.Errorf("postgres: failed to create inventory line: %w", err)
	}

	return nil
}

/*
Update persists the mutable attributes (price, copies) of a locked line.
*/
func (repository *storeBookRepository) Update(context context.Context, line *StoreBook) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = NOW()
		WHERE %s = $3
	`,
		schema.InventoryStoreBook.Table,
		schema.InventoryStoreBook.Price, schema.InventoryStoreBook.Copies, schema.InventoryStoreBook.UpdatedAt,
		schema.InventoryStoreBook.ID,
	)

	tag, err := repository.db.Exec(context, query, line.Price, line.Copies, line.ID)
	if err != nil {
		return fmt.Errorf("postgres: failed to update inventory line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("StoreBook")
	}

	return nil
}

// parsePrice converts the text-cast NUMERIC column into a decimal.
func parsePrice(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	price, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, fmt.Errorf("postgres: unreadable price %q: %w", *raw, err)
	}
	return &price, nil
}
