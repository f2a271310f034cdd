// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package report

import (
	"context"
	"sort"

	"github.com/abdelrahman21-arch/book-store-demo/internal/inventory"
)

/*
MemoryRepository implements [Repository] over the committed state of an
in-memory inventory store.

It mirrors the SQL aggregation semantics so the ranking rules can be
exercised end to end without PostgreSQL: prices order descending with
unpriced lines last and line-ID tie-breaks, and only lines with at least
one copy count toward an author's distinct-title tally.
*/
type MemoryRepository struct {
	store *inventory.MemoryStore
}

// NewMemoryRepository constructs a report repository over the given store.
func NewMemoryRepository(store *inventory.MemoryStore) *MemoryRepository {
	return &MemoryRepository{store: store}
}

func (repo *MemoryRepository) PriciestBooks(_ context.Context, storeID string, limit int) ([]PricedLine, error) {
	lines := repo.storeLines(storeID)

	// Price descending, unpriced lines last, then line ID ascending.
	// Line IDs are time-ordered UUIDs, so the tie-break is insertion order.
	sort.Slice(lines, func(i, j int) bool {
		left, right := lines[i], lines[j]
		switch {
		case left.Price == nil && right.Price == nil:
			return left.ID < right.ID
		case left.Price == nil:
			return false
		case right.Price == nil:
			return true
		}
		if cmp := left.Price.Cmp(*right.Price); cmp != 0 {
			return cmp > 0
		}
		return left.ID < right.ID
	})

	if len(lines) > limit {
		lines = lines[:limit]
	}

	ranked := make([]PricedLine, 0, len(lines))
	for _, line := range lines {
		entry := PricedLine{Price: line.Price, Copies: line.Copies}
		if book, ok := repo.store.FindBookByID(line.BookID); ok {
			entry.BookName = book.Name
			if author, ok := repo.store.FindAuthorByID(book.AuthorID); ok {
				entry.AuthorName = author.Name
			}
		}
		ranked = append(ranked, entry)
	}
	return ranked, nil
}

func (repo *MemoryRepository) ProlificAuthors(_ context.Context, storeID string, limit int) ([]ProlificAuthor, error) {

	// Distinct in-stock titles per author; zero-copy lines do not count.
	titlesByAuthor := make(map[string]map[string]struct{})
	for _, line := range repo.storeLines(storeID) {
		if line.Copies <= 0 {
			continue
		}
		book, ok := repo.store.FindBookByID(line.BookID)
		if !ok {
			continue
		}
		author, ok := repo.store.FindAuthorByID(book.AuthorID)
		if !ok {
			continue
		}
		if titlesByAuthor[author.Name] == nil {
			titlesByAuthor[author.Name] = make(map[string]struct{})
		}
		titlesByAuthor[author.Name][book.ID] = struct{}{}
	}

	ranked := make([]ProlificAuthor, 0, len(titlesByAuthor))
	for name, titles := range titlesByAuthor {
		ranked = append(ranked, ProlificAuthor{Name: name, Titles: len(titles)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Titles != ranked[j].Titles {
			return ranked[i].Titles > ranked[j].Titles
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (repo *MemoryRepository) storeLines(storeID string) []*inventory.StoreBook {
	lines := make([]*inventory.StoreBook, 0)
	for _, line := range repo.store.Lines() {
		if line.StoreID == storeID {
			lines = append(lines, line)
		}
	}
	return lines
}
