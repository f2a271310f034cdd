// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package inventory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/abdelrahman21-arch/book-store-demo/internal/catalog"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/apperr"
	"github.com/abdelrahman21-arch/book-store-demo/pkg/pointer"
	"github.com/abdelrahman21-arch/book-store-demo/pkg/uuid"
)

/*
MemoryStore is an in-memory implementation of the import unit of work.

It exists so the batch pipeline can be exercised without PostgreSQL: tests
(and local experiments) swap it in behind the same [UnitOfWork] port the
pgx implementation fills.

# Transactional Model

Run copies the current state, applies the batch body to the copy, and swaps
the copy in only when the body succeeds — an aborted batch leaves the store
exactly as it was. A store-wide mutex serializes concurrent batches, which
is a coarser schedule than the per-pair row lock of the SQL implementation
but observes the same end states.

# Fault Injection

WriteHook, when set, runs before every inventory line create/update and its
error aborts the batch. Tests use it to simulate a storage fault at row N.
*/
type MemoryStore struct {
	mu    sync.Mutex
	state *memoryState

	// WriteHook injects storage faults into inventory line writes.
	WriteHook func(line *StoreBook) error
}

type storeKey struct {
	name    string
	address string
}

type bookKey struct {
	name     string
	authorID string
}

type pairKey struct {
	storeID string
	bookID  string
}

type memoryState struct {
	authors map[string]*catalog.Author
	stores  map[storeKey]*catalog.Store
	books   map[bookKey]*catalog.Book
	lines   map[pairKey]*StoreBook
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemoryState()}
}

func newMemoryState() *memoryState {
	return &memoryState{
		authors: make(map[string]*catalog.Author),
		stores:  make(map[storeKey]*catalog.Store),
		books:   make(map[bookKey]*catalog.Book),
		lines:   make(map[pairKey]*StoreBook),
	}
}

// clone deep-copies the state so an aborted batch cannot leak mutations.
func (state *memoryState) clone() *memoryState {
	next := newMemoryState()
	for key, author := range state.authors {
		copied := *author
		next.authors[key] = &copied
	}
	for key, store := range state.stores {
		copied := *store
		next.stores[key] = &copied
	}
	for key, book := range state.books {
		copied := *book
		next.books[key] = &copied
	}
	for key, line := range state.lines {
		copied := *line
		next.lines[key] = &copied
	}
	return next
}

// Run implements [UnitOfWork] with copy-on-write commit semantics.
func (store *MemoryStore) Run(context context.Context, fn func(tx Tx) error) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	working := store.state.clone()
	tx := &memoryTx{state: working, writeHook: store.WriteHook}

	if err := fn(tx); err != nil {
		return err
	}

	store.state = working
	return nil
}

// # Inspection Helpers (test assertions)

// AuthorCount returns the number of distinct authors.
func (store *MemoryStore) AuthorCount() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.state.authors)
}

// StoreCount returns the number of distinct stores.
func (store *MemoryStore) StoreCount() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.state.stores)
}

// BookCount returns the number of distinct books.
func (store *MemoryStore) BookCount() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.state.books)
}

// LineCount returns the number of inventory lines.
func (store *MemoryStore) LineCount() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.state.lines)
}

// FindStore returns the committed store for the (name, address) key.
func (store *MemoryStore) FindStore(name string, address *string) (*catalog.Store, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	found, ok := store.state.stores[storeKey{name: name, address: normalizedAddress(address)}]
	return found, ok
}

// FindLine returns the committed inventory line for the pair.
func (store *MemoryStore) FindLine(storeID, bookID string) (*StoreBook, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	line, ok := store.state.lines[pairKey{storeID: storeID, bookID: bookID}]
	return line, ok
}

// FindBookByID returns the committed book with the given ID.
func (store *MemoryStore) FindBookByID(id string) (*catalog.Book, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, book := range store.state.books {
		if book.ID == id {
			return book, true
		}
	}
	return nil, false
}

// FindAuthorByID returns the committed author with the given ID.
func (store *MemoryStore) FindAuthorByID(id string) (*catalog.Author, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, author := range store.state.authors {
		if author.ID == id {
			return author, true
		}
	}
	return nil, false
}

// Lines returns every committed inventory line.
func (store *MemoryStore) Lines() []*StoreBook {
	store.mu.Lock()
	defer store.mu.Unlock()
	lines := make([]*StoreBook, 0, len(store.state.lines))
	for _, line := range store.state.lines {
		lines = append(lines, line)
	}
	return lines
}

// # In-Memory Transaction

type memoryTx struct {
	state     *memoryState
	writeHook func(line *StoreBook) error
}

func (tx *memoryTx) Authors() catalog.AuthorRepository { return &memoryAuthorRepo{tx: tx} }
func (tx *memoryTx) Stores() catalog.StoreRepository   { return &memoryStoreRepo{tx: tx} }
func (tx *memoryTx) Books() catalog.BookRepository     { return &memoryBookRepo{tx: tx} }
func (tx *memoryTx) StoreBooks() StoreBookRepository   { return &memoryStoreBookRepo{tx: tx} }

type memoryAuthorRepo struct{ tx *memoryTx }

func (repo *memoryAuthorRepo) FindOrCreate(_ context.Context, name string) (*catalog.Author, bool, error) {
	if author, ok := repo.tx.state.authors[name]; ok {
		return author, false, nil
	}
	author := &catalog.Author{ID: uuid.New(), Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	repo.tx.state.authors[name] = author
	return author, true, nil
}

type memoryStoreRepo struct{ tx *memoryTx }

func (repo *memoryStoreRepo) FindOrCreate(_ context.Context, name string, address *string) (*catalog.Store, bool, error) {
	key := storeKey{name: name, address: normalizedAddress(address)}
	if found, ok := repo.tx.state.stores[key]; ok {
		return found, false, nil
	}
	created := &catalog.Store{ID: uuid.New(), Name: name, Address: address, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	repo.tx.state.stores[key] = created
	return created, true, nil
}

func (repo *memoryStoreRepo) FindByID(_ context.Context, id string) (*catalog.Store, error) {
	for _, found := range repo.tx.state.stores {
		if found.ID == id {
			return found, nil
		}
	}
	return nil, apperr.NotFound("Store")
}

type memoryBookRepo struct{ tx *memoryTx }

func (repo *memoryBookRepo) FindOrCreate(_ context.Context, name string, pages *int, authorID string) (*catalog.Book, bool, error) {
	key := bookKey{name: name, authorID: authorID}
	if book, ok := repo.tx.state.books[key]; ok {
		return book, false, nil
	}
	book := &catalog.Book{ID: uuid.New(), Name: name, Pages: pages, AuthorID: authorID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	repo.tx.state.books[key] = book
	return book, true, nil
}

type memoryStoreBookRepo struct{ tx *memoryTx }

func (repo *memoryStoreBookRepo) FindForUpdate(_ context.Context, storeID, bookID string) (*StoreBook, error) {
	line, ok := repo.tx.state.lines[pairKey{storeID: storeID, bookID: bookID}]
	if !ok {
		return nil, apperr.NotFound("StoreBook")
	}
	return line, nil
}

func (repo *memoryStoreBookRepo) Create(_ context.Context, line *StoreBook) error {
	if err := repo.hook(line); err != nil {
		return err
	}
	key := pairKey{storeID: line.StoreID, bookID: line.BookID}
	if _, exists := repo.tx.state.lines[key]; exists {
		return apperr.Conflict("Inventory line already exists for this store/book pair")
	}
	line.CreatedAt = time.Now()
	line.UpdatedAt = line.CreatedAt
	repo.tx.state.lines[key] = line
	return nil
}

func (repo *memoryStoreBookRepo) Update(_ context.Context, line *StoreBook) error {
	if err := repo.hook(line); err != nil {
		return err
	}
	key := pairKey{storeID: line.StoreID, bookID: line.BookID}
	if _, exists := repo.tx.state.lines[key]; !exists {
		return apperr.NotFound("StoreBook")
	}
	line.UpdatedAt = time.Now()
	repo.tx.state.lines[key] = line
	return nil
}

func (repo *memoryStoreBookRepo) hook(line *StoreBook) error {
	if repo.tx.writeHook == nil {
		return nil
	}
	return repo.tx.writeHook(line)
}

// normalizedAddress keeps blank and missing addresses on the same identity,
// mirroring the SQL COALESCE(address, '') uniqueness expression.
func normalizedAddress(address *string) string {
	return strings.TrimSpace(pointer.Val(address))
}
