// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

/*
Package catalog — PostgreSQL implementation of the resolve-or-create repositories.

Each repository accepts a [postgres.Querier] rather than a concrete pool, so
the same implementation runs against the shared pool for standalone reads and
against an open pgx.Tx inside the batch-import unit of work.

# Race Handling

FindOrCreate is select-then-insert with an ON CONFLICT DO NOTHING backstop:
when a concurrent transaction creates the same natural key between our SELECT
and INSERT, the insert affects no rows and a second SELECT resolves the row
the other transaction committed. The caller therefore never observes a
uniqueness violation from these repositories.
*/
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/apperr"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/database/schema"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/postgres"
	"github.com/abdelrahman21-arch/book-store-demo/pkg/uuid"
)

// # Author Repository

// authorRepository implements [AuthorRepository] using pgx.
type authorRepository struct {
	db postgres.Querier
}

// NewAuthorRepository constructs a PostgreSQL backed author store.
func NewAuthorRepository(db postgres.Querier) AuthorRepository {
	return &authorRepository{db: db}
}

/*
FindOrCreate resolves the author by exact name match, inserting a new row
when no author with that name exists.

Parameters:
  - context: context.Context
  - name: string (trimmed author name)

Returns:
  - *Author: The resolved or newly created author
  - bool: True when this call inserted the row
  - error: Storage failures
*/
func (repository *authorRepository) FindOrCreate(context context.Context, name string) (*Author, bool, error) {

	// Fast path: the author already exists
	author, err := repository.findByName(context, name)
	if err == nil {
		return author, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("postgres: failed to find author: %w", err)
	}

	// Insert with a conflict backstop for concurrent creators
	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT (%s) DO NOTHING
		RETURNING %s, %s
	`,
		schema.CatalogAuthor.Table,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.Name,
		schema.CatalogAuthor.Name,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
	)

	created := &Author{ID: uuid.New(), Name: name}
	err = repository.db.QueryRow(context, insert, created.ID, created.Name).
		Scan(&created.CreatedAt, &created.UpdatedAt)

	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("postgres: failed to create author: %w", err)
	}

	// A concurrent transaction won the insert race: resolve its row.
	author, err = repository.findByName(context, name)
	if err != nil {
		return nil, false, fmt.Errorf("postgres: failed to resolve author after conflict: %w", err)
	}
	return author, false, nil
}

// findByName loads the author row for an exact (case-sensitive) name match.
func (repository *authorRepository) findByName(context context.Context, name string) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.Name,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
		schema.CatalogAuthor.Table,
		schema.CatalogAuthor.Name,
	)

	var author Author
	err := repository.db.QueryRow(context, query, name).
		Scan(&author.ID, &author.Name, &author.CreatedAt, &author.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// # Store Repository

// storeRepository implements [StoreRepository] using pgx.
type storeRepository struct {
	db postgres.Querier
}

// NewStoreRepository constructs a PostgreSQL backed store repository.
func NewStoreRepository(db postgres.Querier) StoreRepository {
	return &storeRepository{db: db}
}

/*
FindOrCreate resolves the store by its (name, address) natural key.

Description: A nil address matches only rows created without an address
(IS NOT DISTINCT FROM semantics), so "Main St Books" with and without an
address are two distinct stores.

Parameters:
  - context: context.Context
  - name: string
  - address: *string

Returns:
  - *Store: The resolved or newly created store
  - bool: True when this call inserted the row
  - error: Storage failures
*/
func (repository *storeRepository) FindOrCreate(context context.Context, name string, address *string) (*Store, bool, error) {

	store, err := repository.findByKey(context, name, address)
	if err == nil {
		return store, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("postgres: failed to find store: %w", err)
	}

	// The unique index is on (name, COALESCE(address, '')) so NULL addresses
	// participate in the uniqueness guarantee.
	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, COALESCE(%s, '')) DO NOTHING
		RETURNING %s, %s
	`,
		schema.CatalogStore.Table,
		schema.CatalogStore.ID, schema.CatalogStore.Name, schema.CatalogStore.Address,
		schema.CatalogStore.Name, schema.CatalogStore.Address,
		schema.CatalogStore.CreatedAt, schema.CatalogStore.UpdatedAt,
	)

	created := &Store{ID: uuid.New(), Name: name, Address: address}
	err = repository.db.QueryRow(context, insert, created.ID, created.Name, created.Address).
		Scan(&created.CreatedAt, &created.UpdatedAt)

	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("postgres: failed to create store: %w", err)
	}

	store, err = repository.findByKey(context, name, address)
	if err != nil {
		return nil, false, fmt.Errorf("postgres: failed to resolve store after conflict: %w", err)
	}
	return store, false, nil
}

/*
FindByID returns the store with the given UUID.

Returns:
  - *Store: The hydrated store
  - error: apperr.NotFound on absent rows
*/
func (repository *storeRepository) FindByID(context context.Context, id string) (*Store, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CatalogStore.ID, schema.CatalogStore.Name, schema.CatalogStore.Address,
		schema.CatalogStore.CreatedAt, schema.CatalogStore.UpdatedAt,
		schema.CatalogStore.Table,
		schema.CatalogStore.ID,
	)

	var store Store
	err := repository.db.QueryRow(context, query, id).
		Scan(&store.ID, &store.Name, &store.Address, &store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Store")
		}
		return nil, fmt.Errorf("postgres: failed to find store by id: %w", err)
	}
	return &store, nil
}

// findByKey loads the store row for an exact (name, address) match.
func (repository *storeRepository) findByKey(context context.Context, name string, address *string) (*Store, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NOT DISTINCT FROM $2
	`,
		schema.CatalogStore.ID, schema.CatalogStore.Name, schema.CatalogStore.Address,
		schema.CatalogStore.CreatedAt, schema.CatalogStore.UpdatedAt,
		schema.CatalogStore.Table,
		schema.CatalogStore.Name, schema.CatalogStore.Address,
	)

	var store Store
	err := repository.db.QueryRow(context, query, name, address).
		Scan(&store.ID, &store.Name, &store.Address, &store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// # Book Repository

// bookRepository implements [BookRepository] using pgx.
type bookRepository struct {
	db postgres.Querier
}

// NewBookRepository constructs a PostgreSQL backed book store.
func NewBookRepository(db postgres.Querier) BookRepository {
	return &bookRepository{db: db}
}

/*
FindOrCreate resolves the book by its (name, author) natural key.

Description: Pages is written only when this call creates the row. A later
sighting of the same pair with a different page count leaves the stored
value untouched.

Parameters:
  - context: context.Context
  - name: string
  - pages: *int
  - authorID: string (UUID)

Returns:
  - *Book: The resolved or newly created book
  - bool: True when this call inserted the row
  - error: Storage failures
*/
func (repository *bookRepository) FindOrCreate(context context.Context, name string, pages *int, authorID string) (*Book, bool, error) {

	book, err := repository.findByKey(context, name, authorID)
	if err == nil {
		return book, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("postgres: failed to find book: %w", err)
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s) DO NOTHING
		RETURNING %s, %s
	`,
		schema.CatalogBook.Table,
		schema.CatalogBook.ID, schema.CatalogBook.Name, schema.CatalogBook.Pages, schema.CatalogBook.AuthorID,
		schema.CatalogBook.Name, schema.CatalogBook.AuthorID,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	)

	created := &Book{ID: uuid.New(), Name: name, Pages: pages, AuthorID: authorID}
	err = repository.db.QueryRow(context, insert, created.ID, created.Name, created.Pages, created.AuthorID).
		Scan(&created.CreatedAt, &created.UpdatedAt)

	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("postgres: failed to create book: %w", err)
	}

	book, err = repository.findByKey(context, name, authorID)
	if err != nil {
		return nil, false, fmt.Errorf("postgres: failed to resolve book after conflict: %w", err)
	}
	return book, false, nil
}

// findByKey loads the book row for an exact (name, author_id) match.
func (repository *bookRepository) findByKey(context context.Context, name, authorID string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.CatalogBook.ID, schema.CatalogBook.Name, schema.CatalogBook.Pages, schema.CatalogBook.AuthorID,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.Table,
		schema.CatalogBook.Name, schema.CatalogBook.AuthorID,
	)

	var book Book
	err := repository.db.QueryRow(context, query, name, authorID).
		Scan(&book.ID, &book.Name, &book.Pages, &book.AuthorID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &book, nil
}
