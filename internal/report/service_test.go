// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdelrahman21-arch/book-store-demo/internal/catalog"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/apperr"
	"github.com/abdelrahman21-arch/book-store-demo/pkg/pointer"
)

// # Test Doubles

type fakeStores struct {
	store *catalog.Store
}

func (f *fakeStores) FindOrCreate(_ context.Context, name string, address *string) (*catalog.Store, bool, error) {
	return nil, false, fmt.Errorf("unexpected FindOrCreate(%q)", name)
}

func (f *fakeStores) FindByID(_ context.Context, id string) (*catalog.Store, error) {
	if f.store == nil || f.store.ID != id {
		return nil, apperr.NotFound("Store")
	}
	return f.store, nil
}

type fakeRepository struct {
	priciest []PricedLine
	prolific []ProlificAuthor
	err      error
}

func (f *fakeRepository) PriciestBooks(_ context.Context, _ string, limit int) ([]PricedLine, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.priciest) > limit {
		return f.priciest[:limit], nil
	}
	return f.priciest, nil
}

func (f *fakeRepository) ProlificAuthors(_ context.Context, _ string, limit int) ([]ProlificAuthor, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.prolific) > limit {
		return f.prolific[:limit], nil
	}
	return f.prolific, nil
}

type fakeRenderer struct {
	calls int
	body  []byte
	err   error
}

func (f *fakeRenderer) Render(_ *Report) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

func (f *fakeRenderer) ContentType() string { return "application/test" }

type fakeCache struct {
	entries map[string][]byte
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) cacheKey(storeID string, day time.Time) string {
	return storeID + ":" + day.Format("2006-01-02")
}

func (f *fakeCache) Get(_ context.Context, storeID string, day time.Time) ([]byte, bool) {
	body, ok := f.entries[f.cacheKey(storeID, day)]
	return body, ok
}

func (f *fakeCache) Set(_ context.Context, storeID string, day time.Time, body []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[f.cacheKey(storeID, day)] = body
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStore() *catalog.Store {
	return &catalog.Store{
		ID:      "0198a5b0-0000-7000-8000-000000000001",
		Name:    "Downtown Books & Co.",
		Address: pointer.To("12 Main St"),
	}
}

func price(value string) *decimal.Decimal {
	parsed := decimal.RequireFromString(value)
	return &parsed
}

// # Tests

func TestBuildReportUnknownStore(t *testing.T) {
	service := NewService(&fakeStores{}, &fakeRepository{}, &fakeRenderer{}, nil, testLogger())

	report, err := service.BuildReport(context.Background(), "0198a5b0-0000-7000-8000-00000000dead")

	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, apperr.IsNotFound(err))
}

func TestBuildReportAggregatesBothRankings(t *testing.T) {
	store := testStore()
	repo := &fakeRepository{
		priciest: []PricedLine{
			{BookName: "Atlas of Clouds", AuthorName: "M. Rivera", Price: price("42.00"), Copies: 3},
			{BookName: "Quiet Harbors", AuthorName: "M. Rivera", Price: price("12.50"), Copies: 1},
		},
		prolific: []ProlificAuthor{
			{Name: "M. Rivera", Titles: 2},
		},
	}
	service := NewService(&fakeStores{store: store}, repo, &fakeRenderer{}, nil, testLogger())

	report, err := service.BuildReport(context.Background(), store.ID)

	require.NoError(t, err)
	assert.Same(t, store, report.Store)
	assert.False(t, report.GeneratedAt.IsZero())
	require.Len(t, report.PriciestBooks, 2)
	assert.Equal(t, "Atlas of Clouds", report.PriciestBooks[0].BookName)
	require.Len(t, report.ProlificAuthors, 1)
	assert.Equal(t, 2, report.ProlificAuthors[0].Titles)
}

func TestGenerateDocumentFilename(t *testing.T) {
	store := testStore()
	renderer := &fakeRenderer{body: []byte("doc")}
	service := NewService(&fakeStores{store: store}, &fakeRepository{}, renderer, nil, testLogger())

	document, err := service.GenerateDocument(context.Background(), store.ID)

	require.NoError(t, err)
	expected := "downtown-books-co-Report-" + time.Now().Format("2006-01-02") + ".pdf"
	assert.Equal(t, expected, document.Filename)
	assert.Equal(t, "application/test", document.ContentType)
	assert.Equal(t, []byte("doc"), document.Body)
}

func TestGenerateDocumentUsesCache(t *testing.T) {
	store := testStore()
	renderer := &fakeRenderer{body: []byte("rendered")}
	cache := newFakeCache()
	service := NewService(&fakeStores{store: store}, &fakeRepository{}, renderer, cache, testLogger())

	first, err := service.GenerateDocument(context.Background(), store.ID)
	require.NoError(t, err)

	second, err := service.GenerateDocument(context.Background(), store.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, renderer.calls, "second request must be served from cache")
	assert.Equal(t, first.Body, second.Body)
	assert.Equal(t, first.Filename, second.Filename)
}

func TestGenerateDocumentSurvivesCacheWriteFailure(t *testing.T) {
	store := testStore()
	renderer := &fakeRenderer{body: []byte("rendered")}
	cache := newFakeCache()
	cache.setErr = fmt.Errorf("redis down")
	service := NewService(&fakeStores{store: store}, &fakeRepository{}, renderer, cache, testLogger())

	document, err := service.GenerateDocument(context.Background(), store.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte("rendered"), document.Body)
}

func TestGenerateDocumentRenderFailure(t *testing.T) {
	store := testStore()
	renderer := &fakeRenderer{err: fmt.Errorf("font missing")}
	service := NewService(&fakeStores{store: store}, &fakeRepository{}, renderer, nil, testLogger())

	document, err := service.GenerateDocument(context.Background(), store.ID)

	require.Error(t, err)
	assert.Nil(t, document)
}
