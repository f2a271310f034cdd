// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package report

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdelrahman21-arch/book-store-demo/internal/inventory"
)

// seedLine commits one inventory line, creating the catalog entities on the
// way. Direct seeding can produce states the import path cannot, such as
// sold-out lines with zero copies.
func seedLine(t *testing.T, store *inventory.MemoryStore, lineID, storeName, bookName, authorName string, linePrice *decimal.Decimal, copies int) string {
	t.Helper()

	var storeID string
	err := store.Run(context.Background(), func(tx inventory.Tx) error {
		ctx := context.Background()

		author, _, err := tx.Authors().FindOrCreate(ctx, authorName)
		if err != nil {
			return err
		}
		shop, _, err := tx.Stores().FindOrCreate(ctx, storeName, nil)
		if err != nil {
			return err
		}
		book, _, err := tx.Books().FindOrCreate(ctx, bookName, nil, author.ID)
		if err != nil {
			return err
		}

		storeID = shop.ID
		return tx.StoreBooks().Create(ctx, &inventory.StoreBook{
			ID:      lineID,
			StoreID: shop.ID,
			BookID:  book.ID,
			Price:   linePrice,
			Copies:  copies,
			SoldOut: copies == 0,
		})
	})
	require.NoError(t, err)
	return storeID
}

func lineID(n int) string {
	return fmt.Sprintf("0198a5b0-1111-7000-8000-%012d", n)
}

func TestMemoryRepositoryPriciestBooksOrdering(t *testing.T) {
	store := inventory.NewMemoryStore()

	storeID := seedLine(t, store, lineID(1), "Downtown Books", "Atlas of Clouds", "M. Rivera", price("19.99"), 3)
	seedLine(t, store, lineID(2), "Downtown Books", "Quiet Harbors", "A. Chen", price("5.00"), 1)
	seedLine(t, store, lineID(3), "Downtown Books", "Salt and Light", "A. Chen", price("19.99"), 2)
	seedLine(t, store, lineID(4), "Downtown Books", "Paper Moons", "M. Rivera", price("3.50"), 1)
	seedLine(t, store, lineID(5), "Downtown Books", "Field Notes", "M. Rivera", nil, 2)

	// Another store's pricier line must never leak into the ranking.
	seedLine(t, store, lineID(6), "Harbor Reads", "Atlas of Clouds", "M. Rivera", price("99.00"), 1)

	lines, err := NewMemoryRepository(store).PriciestBooks(context.Background(), storeID, TopCount)
	require.NoError(t, err)
	require.Len(t, lines, 5)

	names := make([]string, 0, len(lines))
	for _, line := range lines {
		names = append(names, line.BookName)
	}

	// Both 19.99 lines rank above 5.00, tied prices break by line ID
	// (insertion order), and the unpriced line sorts last.
	assert.Equal(t, []string{"Atlas of Clouds", "Salt and Light", "Quiet Harbors", "Paper Moons", "Field Notes"}, names)
	assert.Equal(t, "19.99", lines[0].PriceDisplay())
	assert.Equal(t, "19.99", lines[1].PriceDisplay())
	assert.Equal(t, "M. Rivera", lines[0].AuthorName)
	assert.Equal(t, "A. Chen", lines[1].AuthorName)

	assert.Nil(t, lines[4].Price)
	assert.Equal(t, "0.00", lines[4].PriceDisplay())
}

func TestMemoryRepositoryProlificAuthorsExcludesSoldOut(t *testing.T) {
	store := inventory.NewMemoryStore()

	storeID := seedLine(t, store, lineID(1), "Downtown Books", "Atlas of Clouds", "M. Rivera", price("9.99"), 2)
	seedLine(t, store, lineID(2), "Downtown Books", "Paper Moons", "M. Rivera", price("3.50"), 1)
	seedLine(t, store, lineID(3), "Downtown Books", "Field Notes", "M. Rivera", nil, 1)
	seedLine(t, store, lineID(4), "Downtown Books", "Quiet Harbors", "A. Chen", price("5.00"), 1)
	seedLine(t, store, lineID(5), "Downtown Books", "Salt and Light", "A. Chen", price("7.25"), 1)
	seedLine(t, store, lineID(6), "Downtown Books", "Gull Season", "B. Stone", price("4.00"), 1)
	seedLine(t, store, lineID(7), "Downtown Books", "Tide Tables", "B. Stone", price("6.00"), 2)

	// Sold-out lines never count: one must not inflate an author's tally,
	// and an author with nothing in stock must not appear at all.
	seedLine(t, store, lineID(8), "Downtown Books", "Spare Rooms", "M. Rivera", price("8.00"), 0)
	seedLine(t, store, lineID(9), "Downtown Books", "Ghost Title", "Z. Adler", price("2.00"), 0)

	repo := NewMemoryRepository(store)

	authors, err := repo.ProlificAuthors(context.Background(), storeID, TopCount)
	require.NoError(t, err)
	assert.Equal(t, []ProlificAuthor{
		{Name: "M. Rivera", Titles: 3},
		{Name: "A. Chen", Titles: 2},
		{Name: "B. Stone", Titles: 2},
	}, authors)

	truncated, err := repo.ProlificAuthors(context.Background(), storeID, 2)
	require.NoError(t, err)
	assert.Equal(t, []ProlificAuthor{
		{Name: "M. Rivera", Titles: 3},
		{Name: "A. Chen", Titles: 2},
	}, truncated)
}

func TestMemoryRepositoryEmptyStore(t *testing.T) {
	repo := NewMemoryRepository(inventory.NewMemoryStore())

	lines, err := repo.PriciestBooks(context.Background(), "0198a5b0-2222-7000-8000-000000000000", TopCount)
	require.NoError(t, err)
	assert.Empty(t, lines)

	authors, err := repo.ProlificAuthors(context.Background(), "0198a5b0-2222-7000-8000-000000000000", TopCount)
	require.NoError(t, err)
	assert.Empty(t, authors)
}

// The rankings also hold over inventory that arrived through the import
// pipeline itself, not just directly seeded state.
func TestMemoryRepositoryAggregatesImportedInventory(t *testing.T) {
	store := inventory.NewMemoryStore()
	importer := inventory.NewService(store, nil, testLogger())

	csv := "store_name,store_address,book_name,author_name,pages,price\n" +
		"Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,19.99\n" +
		"Downtown Books,12 Main St,Quiet Harbors,A. Chen,210,5.00\n" +
		"Downtown Books,12 Main St,Paper Moons,M. Rivera,180,19.99\n"

	summary, err := importer.Import(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 3, summary.Processed)

	address := "12 Main St"
	downtown, ok := store.FindStore("Downtown Books", &address)
	require.True(t, ok)

	lines, err := NewMemoryRepository(store).PriciestBooks(context.Background(), downtown.ID, TopCount)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "Atlas of Clouds", lines[0].BookName)
	assert.Equal(t, "Paper Moons", lines[1].BookName)
	assert.Equal(t, "Quiet Harbors", lines[2].BookName)
}
