// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFRendererProducesDocument(t *testing.T) {
	renderer := NewPDFRenderer()
	report := &Report{
		Store:       testStore(),
		GeneratedAt: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		PriciestBooks: []PricedLine{
			{BookName: "Atlas of Clouds", AuthorName: "M. Rivera", Price: price("42.00"), Copies: 3},
			{BookName: "Quiet Harbors", AuthorName: "M. Rivera", Copies: 1},
		},
		ProlificAuthors: []ProlificAuthor{
			{Name: "M. Rivera", Titles: 2},
		},
	}

	body, err := renderer.Render(report)

	require.NoError(t, err)
	require.NotEmpty(t, body)
	assert.Equal(t, "%PDF-", string(body[:5]))
	assert.Equal(t, "application/pdf", renderer.ContentType())
}

func TestPDFRendererEmptyStore(t *testing.T) {
	renderer := NewPDFRenderer()
	report := &Report{
		Store:       testStore(),
		GeneratedAt: time.Now(),
	}

	body, err := renderer.Render(report)

	require.NoError(t, err)
	assert.NotEmpty(t, body)
}

func TestPriceDisplay(t *testing.T) {
	assert.Equal(t, "0.00", PricedLine{}.PriceDisplay())
	assert.Equal(t, "12.50", PricedLine{Price: price("12.5")}.PriceDisplay())
}
