// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/apperr"
)

// scriptedRepo replays canned results so the conflict-retry path can be
// driven without a second transaction.
type scriptedRepo struct {
	findResults []findResult
	createErr   error

	created []*StoreBook
	updated []*StoreBook
}

type findResult struct {
	line *StoreBook
	err  error
}

func (repo *scriptedRepo) FindForUpdate(_ context.Context, _, _ string) (*StoreBook, error) {
	if len(repo.findResults) == 0 {
		return nil, apperr.NotFound("StoreBook")
	}
	next := repo.findResults[0]
	repo.findResults = repo.findResults[1:]
	return next.line, next.err
}

func (repo *scriptedRepo) Create(_ context.Context, line *StoreBook) error {
	if repo.createErr != nil {
		return repo.createErr
	}
	repo.created = append(repo.created, line)
	return nil
}

func (repo *scriptedRepo) Update(_ context.Context, line *StoreBook) error {
	repo.updated = append(repo.updated, line)
	return nil
}

func TestReconcileLineCreatesWithDefaults(t *testing.T) {
	repo := &scriptedRepo{
		findResults: []findResult{{err: apperr.NotFound("StoreBook")}},
	}

	created, err := reconcileLine(context.Background(), repo, "store-1", "book-1", nil)

	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, repo.created, 1)
	line := repo.created[0]
	assert.Equal(t, 1, line.Copies)
	assert.False(t, line.SoldOut)
	require.NotNil(t, line.Price, "a missing price defaults to zero, never NULL-on-create")
	assert.True(t, line.Price.IsZero())
}

func TestReconcileLineIncrementsAndOverwritesPrice(t *testing.T) {
	existingPrice := decimal.RequireFromString("9.99")
	incoming := decimal.RequireFromString("12.50")
	repo := &scriptedRepo{
		findResults: []findResult{{line: &StoreBook{ID: "line-1", Copies: 1, Price: &existingPrice}}},
	}

	created, err := reconcileLine(context.Background(), repo, "store-1", "book-1", &incoming)

	require.NoError(t, err)
	assert.False(t, created)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, 2, repo.updated[0].Copies)
	assert.Equal(t, "12.50", repo.updated[0].Price.StringFixed(2))
}

func TestReconcileLineKeepsPriceWhenIncomingAbsent(t *testing.T) {
	existingPrice := decimal.RequireFromString("9.99")
	repo := &scriptedRepo{
		findResults: []findResult{{line: &StoreBook{ID: "line-1", Copies: 3, Price: &existingPrice}}},
	}

	created, err := reconcileLine(context.Background(), repo, "store-1", "book-1", nil)

	require.NoError(t, err)
	assert.False(t, created)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, 4, repo.updated[0].Copies)
	assert.Equal(t, "9.99", repo.updated[0].Price.StringFixed(2))
}

func TestReconcileLineRetriesLostCreationRace(t *testing.T) {
	racedPrice := decimal.RequireFromString("7.00")
	repo := &scriptedRepo{
		findResults: []findResult{
			{err: apperr.NotFound("StoreBook")},
			{line: &StoreBook{ID: "line-1", Copies: 1, Price: &racedPrice}},
		},
		createErr: apperr.Conflict("Inventory line already exists for this store/book pair"),
	}

	created, err := reconcileLine(context.Background(), repo, "store-1", "book-1", nil)

	require.NoError(t, err, "a lost creation race must be absorbed, not surfaced")
	assert.False(t, created)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, 2, repo.updated[0].Copies)
}
