// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

/*
Package catalog holds the immutable side of the bookstore domain: authors,
stores, and books.

These entities are identified by natural keys and follow a strict
resolve-or-create lifecycle: the inventory import creates them on first
encounter and never updates or deletes them afterwards. The mutable inventory
line joining a store and a book lives in the inventory package.

# Natural Keys

  - Author: name (trimmed, case-sensitive exact match).
  - Store: (name, address) — same name at a different address is a different store.
  - Book: (name, author) — page count is captured at creation only.
*/
package catalog

import (
	"context"
	"time"
)

// # Domain Entities

// Author is a book author, created on first encounter during an import.
type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store is a physical bookstore location.
//
// Address is nil when the source row carried no address; a blank address is
// normalized to nil before lookup so "no address" is a single identity.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Book is a catalog title by a single author.
//
// Pages is recorded when the book is first created and never overwritten by
// later sightings of the same (name, author) pair.
type Book struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Pages     *int      `json:"pages,omitempty"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// # Data Access Contracts

// AuthorRepository resolves or creates authors by their natural key.
type AuthorRepository interface {

	/*
		FindOrCreate returns the author with the given name, creating it if absent.

		Parameters:
		  - context: context.Context
		  - name: string (trimmed author name)

		Returns:
		  - *Author: The resolved or newly created author
		  - bool: True when the author was created by this call
		  - error: Storage failures
	*/
	FindOrCreate(context context.Context, name string) (*Author, bool, error)
}

// StoreRepository resolves or creates stores by their (name, address) key.
type StoreRepository interface {

	/*
		FindOrCreate returns the store with the given name and address,
		creating it if absent. A nil address matches only stores created
		without an address.

		Parameters:
		  - context: context.Context
		  - name: string
		  - address: *string (nil when the source row had no address)

		Returns:
		  - *Store: The resolved or newly created store
		  - bool: True when the store was created by this call
		  - error: Storage failures
	*/
	FindOrCreate(context context.Context, name string, address *string) (*Store, bool, error)

	/*
		FindByID returns the store with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Store: The hydrated store
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Store, error)
}

// BookRepository resolves or creates books by their (name, author) key.
type BookRepository interface {

	/*
		FindOrCreate returns the book with the given name by the given author,
		creating it if absent. Pages is persisted only on creation.

		Parameters:
		  - context: context.Context
		  - name: string
		  - pages: *int (nil when the source row had no readable page count)
		  - authorID: string (UUID of the resolved author)

		Returns:
		  - *Book: The resolved or newly created book
		  - bool: True when the book was created by this call
		  - error: Storage failures
	*/
	FindOrCreate(context context.Context, name string, pages *int, authorID string) (*Book, bool, error)
}
