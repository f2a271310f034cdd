// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/database/schema"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/dberr"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/postgres"
)

// repository implements [Repository] using pgx over the shared pool.
//
// Reports read committed state only: the queries run outside any import
// transaction, so an in-flight batch is never visible to them.
type repository struct {
	db postgres.Querier
}

// NewRepository constructs a PostgreSQL backed report repository.
func NewRepository(db postgres.Querier) Repository {
	return &repository{db: db}
}

func (repository *repository) PriciestBooks(context context.Context, storeID string, limit int) ([]PricedLine, error) {

	// Price is NUMERIC in the schema; selecting it as text keeps the exact
	// scale for decimal parsing. NULLS LAST pushes unpriced lines below
	// every priced one, and the line ID breaks price ties deterministically.
	query := fmt.Sprintf(`
		SELECT b.%s, a.%s, sb.%s::text, sb.%s
		FROM %s sb
		JOIN %s b ON b.%s = sb.%s
		JOIN %s a ON a.%s = b.%s
		WHERE sb.%s = $1
		ORDER BY sb.%s DESC NULLS LAST, sb.%s ASC
		LIMIT $2
	`,
		schema.CatalogBook.Name, schema.CatalogAuthor.Name,
		schema.InventoryStoreBook.Price, schema.InventoryStoreBook.Copies,
		schema.InventoryStoreBook.Table,
		schema.CatalogBook.Table, schema.CatalogBook.ID, schema.InventoryStoreBook.BookID,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.ID, schema.CatalogBook.AuthorID,
		schema.InventoryStoreBook.StoreID,
		schema.InventoryStoreBook.Price, schema.InventoryStoreBook.ID,
	)

	rows, err := repository.db.Query(context, query, storeID, limit)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: priciest books query failed: %w", err))
	}
	defer rows.Close()

	lines := make([]PricedLine, 0, limit)
	for rows.Next() {
		var line PricedLine
		var rawPrice *string

		if err := rows.Scan(&line.BookName, &line.AuthorName, &rawPrice, &line.Copies); err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres: failed to scan priced line: %w", err))
		}

		if rawPrice != nil {
			price, err := decimal.NewFromString(*rawPrice)
			if err != nil {
				return nil, dberr.Wrap(fmt.Errorf("postgres: invalid stored price %q: %w", *rawPrice, err))
			}
			line.Price = &price
		}

		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: priced line iteration failed: %w", err))
	}

	return lines, nil
}

func (repository *repository) ProlificAuthors(context context.Context, storeID string, limit int) ([]ProlificAuthor, error) {

	// An author counts once per distinct title the store actually stocks;
	// sold-out lines with zero copies are excluded from the tally.
	query := fmt.Sprintf(`
		SELECT a.%s, COUNT(DISTINCT b.%s) AS titles
		FROM %s sb
		JOIN %s b ON b.%s = sb.%s
		JOIN %s a ON a.%s = b.%s
		WHERE sb.%s = $1 AND sb.%s > 0
		GROUP BY a.%s, a.%s
		ORDER BY titles DESC, a.%s ASC
		LIMIT $2
	`,
		schema.CatalogAuthor.Name, schema.CatalogBook.ID,
		schema.InventoryStoreBook.Table,
		schema.CatalogBook.Table, schema.CatalogBook.ID, schema.InventoryStoreBook.BookID,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.ID, schema.CatalogBook.AuthorID,
		schema.InventoryStoreBook.StoreID, schema.InventoryStoreBook.Copies,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.Name,
		schema.CatalogAuthor.Name,
	)

	rows, err := repository.db.Query(context, query, storeID, limit)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: prolific authors query failed: %w", err))
	}
	defer rows.Close()

	authors := make([]ProlificAuthor, 0, limit)
	for rows.Next() {
		var author ProlificAuthor
		if err := rows.Scan(&author.Name, &author.Titles); err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres: failed to scan prolific author: %w", err))
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: prolific author iteration failed: %w", err))
	}

	return authors, nil
}
