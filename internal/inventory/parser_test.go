// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package inventory

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/apperr"
)

func TestParserMapsRowsByHeader(t *testing.T) {
	source := strings.NewReader(
		"store_name,store_address,book_name,author_name,pages,price\n" +
			"Downtown Books,12 Main St,Atlas of Clouds,M. Rivera,320,9.99\n" +
			"Harbor Reads,,Quiet Harbors,M. Rivera,,\n",
	)
	parser := NewParser(source)

	first, err := parser.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Row)
	assert.Equal(t, "Downtown Books", first.Fields[FieldStoreName])
	assert.Equal(t, "12 Main St", first.Fields[FieldStoreAddress])
	assert.Equal(t, "9.99", first.Fields[FieldPrice])

	second, err := parser.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, second.Row)
	assert.Equal(t, "Harbor Reads", second.Fields[FieldStoreName])
	assert.Empty(t, second.Fields[FieldStoreAddress])

	_, err = parser.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestParserNumbersRecordsAcrossBlankLines(t *testing.T) {
	source := strings.NewReader(
		"store_name,book_name,author_name\n" +
			"\n" +
			"Downtown Books,Atlas of Clouds,M. Rivera\n" +
			"\n\n" +
			"Harbor Reads,Quiet Harbors,M. Rivera\n",
	)
	parser := NewParser(source)

	first, err := parser.Next()
	require.NoError(t, err)
	second, err := parser.Next()
	require.NoError(t, err)

	// Blank lines never consume a record number, so Row stays sequential
	// even when it no longer matches the editor's physical line count.
	assert.Equal(t, 1, first.Row)
	assert.Equal(t, 2, second.Row)
	assert.Equal(t, "Downtown Books", first.Fields[FieldStoreName])
	assert.Equal(t, "Harbor Reads", second.Fields[FieldStoreName])

	_, err = parser.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestParserQuotedCells(t *testing.T) {
	source := strings.NewReader(
		"store_name,store_address,book_name,author_name,pages,price\n" +
			"\"Books, Etc.\",\"1 Plaza, Suite 2\",\"War and Peace\",Tolstoy,1225,15\n",
	)
	parser := NewParser(source)

	record, err := parser.Next()
	require.NoError(t, err)
	assert.Equal(t, "Books, Etc.", record.Fields[FieldStoreName])
	assert.Equal(t, "1 Plaza, Suite 2", record.Fields[FieldStoreAddress])
}

func TestParserEmptyInput(t *testing.T) {
	parser := NewParser(strings.NewReader(""))

	_, err := parser.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestParserHeaderOnly(t *testing.T) {
	parser := NewParser(strings.NewReader("store_name,book_name,author_name\n"))

	_, err := parser.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestParserInconsistentColumns(t *testing.T) {
	source := strings.NewReader(
		"store_name,book_name,author_name\n" +
			"Downtown Books,Atlas of Clouds,M. Rivera,EXTRA\n",
	)
	parser := NewParser(source)

	_, err := parser.Next()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "MALFORMED_INPUT", ae.Code)

	// A failed sequence stays exhausted.
	_, err = parser.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestParserRejectsInvalidUTF8(t *testing.T) {
	source := strings.NewReader(
		"store_name,book_name,author_name\n" +
			"Downtown Books,Atlas\xff\xfe,M. Rivera\n",
	)
	parser := NewParser(source)

	_, err := parser.Next()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "MALFORMED_INPUT", ae.Code)
}

func TestCandidateNormalization(t *testing.T) {
	record := Record{
		Row: 1,
		Fields: map[string]string{
			FieldStoreName:    "  Downtown Books  ",
			FieldStoreAddress: "   ",
			FieldBookName:     "Atlas of Clouds",
			FieldAuthorName:   " M. Rivera ",
			FieldPages:        "320",
			FieldPrice:        "9.99",
		},
	}

	candidate := record.Candidate()

	assert.Equal(t, "Downtown Books", candidate.StoreName)
	assert.Equal(t, "M. Rivera", candidate.AuthorName)
	assert.Nil(t, candidate.StoreAddress, "blank address collapses to nil")
	require.NotNil(t, candidate.Pages)
	assert.Equal(t, 320, *candidate.Pages)
	require.NotNil(t, candidate.Price)
	assert.Equal(t, "9.99", candidate.Price.StringFixed(2))
}

func TestCandidateLenientNumerics(t *testing.T) {
	record := Record{
		Fields: map[string]string{
			FieldStoreName:  "Downtown Books",
			FieldBookName:   "Atlas of Clouds",
			FieldAuthorName: "M. Rivera",
			FieldPages:      "-5",
			FieldPrice:      "free",
		},
	}

	candidate := record.Candidate()

	assert.Nil(t, candidate.Pages, "negative page counts are dropped")
	assert.Nil(t, candidate.Price, "unparseable prices are dropped")
}
