// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package inventory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/apperr"
)

const csvHeader = "store_name,store_address,book_name,author_name,pages,price\n"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func importCSV(t *testing.T, store *MemoryStore, cache ReportCache, body string) (*Summary, error) {
	t.Helper()
	service := NewService(store, cache, testLogger())
	return service.Import(context.Background(), strings.NewReader(csvHeader+body))
}

// recordingCache records invalidated store IDs.
type recordingCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (cache *recordingCache) Invalidate(_ context.Context, storeID string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.invalidated = append(cache.invalidated, storeID)
	return nil
}

func TestImportSameBookTwiceAccumulatesCopies(t *testing.T) {
	store := NewMemoryStore()

	summary, err := importCSV(t, store, nil,
		"Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,9.99\n"+
			"Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,12.50\n",
	)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.CreatedAuthors)
	assert.Equal(t, 1, summary.CreatedStores)
	assert.Equal(t, 1, summary.CreatedBooks)
	assert.Equal(t, 1, summary.CreatedStoreBooks)
	assert.Equal(t, 1, summary.UpdatedStoreBooks)
	assert.Empty(t, summary.Errors)

	require.Equal(t, 1, store.LineCount())
	line := store.Lines()[0]
	assert.Equal(t, 2, line.Copies)
	require.NotNil(t, line.Price)
	assert.Equal(t, "12.50", line.Price.StringFixed(2), "the later row's price wins")
}

func TestImportIsIdempotentOnEntities(t *testing.T) {
	store := NewMemoryStore()
	body := "Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,9.99\n"

	first, err := importCSV(t, store, nil, body)
	require.NoError(t, err)
	assert.Equal(t, 1, first.CreatedStoreBooks)

	second, err := importCSV(t, store, nil, body)
	require.NoError(t, err)
	assert.Zero(t, second.CreatedAuthors)
	assert.Zero(t, second.CreatedStores)
	assert.Zero(t, second.CreatedBooks)
	assert.Zero(t, second.CreatedStoreBooks)
	assert.Equal(t, 1, second.UpdatedStoreBooks)

	assert.Equal(t, 1, store.AuthorCount())
	assert.Equal(t, 1, store.StoreCount())
	assert.Equal(t, 1, store.BookCount())
	assert.Equal(t, 1, store.LineCount())
	assert.Equal(t, 2, store.Lines()[0].Copies)
}

func TestImportMissingPriceKeepsExisting(t *testing.T) {
	store := NewMemoryStore()

	_, err := importCSV(t, store, nil,
		"Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,9.99\n"+
			"Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,\n",
	)

	require.NoError(t, err)
	line := store.Lines()[0]
	assert.Equal(t, 2, line.Copies)
	assert.Equal(t, "9.99", line.Price.StringFixed(2))
}

func TestImportRejectsRowsMissingNames(t *testing.T) {
	store := NewMemoryStore()

	summary, err := importCSV(t, store, nil,
		"Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,9.99\n"+
			"Downtown Books,12 Main St,,M. Rivera,200,5.00\n"+
			"Harbor Reads,,Quiet Harbors,,150,8.00\n"+
			"Harbor Reads,,Quiet Harbors,M. Rivera,150,8.00\n",
	)

	require.NoError(t, err, "rejected rows never abort the batch")
	assert.Equal(t, 4, summary.Processed)
	require.Len(t, summary.Errors, 2)
	assert.Equal(t, 2, summary.Errors[0].Row)
	assert.Equal(t, "missing field: book_name", summary.Errors[0].Reason)
	assert.Equal(t, 3, summary.Errors[1].Row)
	assert.Equal(t, "missing field: author_name", summary.Errors[1].Reason)

	// Only the two valid rows landed.
	assert.Equal(t, 2, store.LineCount())
	assert.Equal(t, 2, store.StoreCount())
}

func TestImportMalformedCSVAbortsEverything(t *testing.T) {
	store := NewMemoryStore()

	summary, err := importCSV(t, store, nil,
		"Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,9.99\n"+
			"Harbor Reads,BROKEN ROW\n",
	)

	require.Error(t, err)
	assert.Nil(t, summary)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "MALFORMED_INPUT", ae.Code)

	// The valid first row must not survive the abort.
	assert.Zero(t, store.AuthorCount())
	assert.Zero(t, store.LineCount())
}

func TestImportStorageFaultRollsBack(t *testing.T) {
	store := NewMemoryStore()
	writes := 0
	store.WriteHook = func(_ *StoreBook) error {
		writes++
		if writes == 3 {
			return apperr.Internal(fmt.Errorf("disk full"))
		}
		return nil
	}

	summary, err := importCSV(t, store, nil,
		"Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,9.99\n"+
			"Harbor Reads,,Quiet Harbors,M. Rivera,150,8.00\n"+
			"Downtown Books,12 Main St,Quiet Harbors,M. Rivera,150,8.00\n",
	)

	require.Error(t, err)
	assert.Nil(t, summary)
	assert.Zero(t, store.AuthorCount())
	assert.Zero(t, store.StoreCount())
	assert.Zero(t, store.LineCount())
}

func TestImportBlankAddressIsOneStoreIdentity(t *testing.T) {
	store := NewMemoryStore()

	_, err := importCSV(t, store, nil,
		"Harbor Reads,,Quiet Harbors,M. Rivera,150,8.00\n"+
			"Harbor Reads,   ,Atlas of Clouds,M. Rivera,320,9.99\n",
	)

	require.NoError(t, err)
	assert.Equal(t, 1, store.StoreCount(), "blank and missing addresses resolve to the same store")
}

func TestImportSameNameDifferentAddressIsTwoStores(t *testing.T) {
	store := NewMemoryStore()

	_, err := importCSV(t, store, nil,
		"Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,9.99\n"+
			"Downtown Books,99 Side Ave,Atlas of Clouds,M. Rivera,320,9.99\n",
	)

	require.NoError(t, err)
	assert.Equal(t, 2, store.StoreCount())
	assert.Equal(t, 2, store.LineCount())
	assert.Equal(t, 1, store.BookCount())
}

func TestImportConcurrentBatchesSamePair(t *testing.T) {
	store := NewMemoryStore()
	body := "Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,9.99\n"

	var group sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		group.Add(1)
		go func(slot int) {
			defer group.Done()
			service := NewService(store, nil, testLogger())
			_, errs[slot] = service.Import(context.Background(), strings.NewReader(csvHeader+body))
		}(i)
	}
	group.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 1, store.AuthorCount())
	assert.Equal(t, 1, store.LineCount())
	assert.Equal(t, 2, store.Lines()[0].Copies)
}

func TestImportInvalidatesTouchedStoreReports(t *testing.T) {
	store := NewMemoryStore()
	cache := &recordingCache{}

	_, err := importCSV(t, store, cache,
		"Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,9.99\n"+
			"Harbor Reads,,Quiet Harbors,M. Rivera,150,8.00\n",
	)
	require.NoError(t, err)

	require.Len(t, cache.invalidated, 2)
	address := "12 Main St"
	downtown, ok := store.FindStore("Downtown Books", &address)
	require.True(t, ok)
	assert.Contains(t, cache.invalidated, downtown.ID)
}

func TestImportAbortSkipsCacheInvalidation(t *testing.T) {
	store := NewMemoryStore()
	cache := &recordingCache{}

	_, err := importCSV(t, store, cache,
		"Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,9.99\n"+
			"Harbor Reads,BROKEN ROW\n",
	)

	require.Error(t, err)
	assert.Empty(t, cache.invalidated)
}

func TestImportEmptyFileCommitsNothing(t *testing.T) {
	store := NewMemoryStore()

	summary, err := importCSV(t, store, nil, "")

	require.NoError(t, err)
	assert.Zero(t, summary.Processed)
	assert.Empty(t, summary.Errors)
	assert.Zero(t, store.LineCount())
}
