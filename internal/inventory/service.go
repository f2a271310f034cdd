// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package inventory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/apperr"
)

// ReportCache is the slice of the report cache the import needs: after a
// committed batch, cached documents for every touched store are stale.
type ReportCache interface {
	Invalidate(context context.Context, storeID string) error
}

// # Batch Coordinator

// Service orchestrates inventory import batches.
type Service struct {
	uow    UnitOfWork
	cache  ReportCache
	logger *slog.Logger
}

// NewService constructs a new [Service].
//
// cache may be nil (the importctl CLI runs without Redis); invalidation is
// then skipped.
func NewService(uow UnitOfWork, cache ReportCache, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		cache:  cache,
		logger: logger,
	}
}

/*
Import runs one batch: it parses the CSV source and applies every row inside
a single atomic unit of work.

Description: Rows are processed sequentially in input order — later rows may
depend on entities created by earlier rows of the same batch (the same
author appearing twice). Rows missing a required name are recorded in the
summary's error list and skipped; they never abort the batch. Malformed CSV
content and storage faults abort the whole batch: the transaction rolls back
and no partial summary is returned.

Parameters:
  - context: context.Context
  - source: io.Reader (raw CSV bytes, header row first)

Returns:
  - *Summary: Aggregate counters and per-row rejections (nil on abort)
  - error: MALFORMED_INPUT, or the storage fault that rolled the batch back
*/
func (service *Service) Import(context context.Context, source io.Reader) (*Summary, error) {
	parser := NewParser(source)
	summary := &Summary{Errors: []RowError{}}
	touched := touchedStores{}

	err := service.uow.Run(context, func(tx Tx) error {
		for {
			record, err := parser.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				// Malformed input: abort with nothing persisted.
				return err
			}

			summary.Processed++

			if err := service.applyRow(context, tx, record, summary, touched); err != nil {
				return err
			}
		}
	})

	if err != nil {
		service.logger.Warn("import_rolled_back",
			slog.Int("rows_seen", summary.Processed),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	service.logger.Info("import_committed",
		slog.Int("processed", summary.Processed),
		slog.Int("created_authors", summary.CreatedAuthors),
		slog.Int("created_stores", summary.CreatedStores),
		slog.Int("created_books", summary.CreatedBooks),
		slog.Int("created_store_books", summary.CreatedStoreBooks),
		slog.Int("updated_store_books", summary.UpdatedStoreBooks),
		slog.Int("rejected_rows", len(summary.Errors)),
	)

	service.invalidateReports(context, touched)

	return summary, nil
}

// applyRow resolves and reconciles one record. Validation rejections are
// absorbed into the summary; every other error aborts the batch.
func (service *Service) applyRow(context context.Context, tx Tx, record Record, summary *Summary, touched touchedStores) error {
	candidate := record.Candidate()

	resolved, err := resolveEntities(context, tx, candidate)
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.Code == "VALIDATION_ERROR" {
			summary.Errors = append(summary.Errors, RowError{
				Row:    record.Row,
				Record: record.Fields,
				Reason: rejectionReason(ae),
			})
			return nil
		}
		return err
	}

	if resolved.createdAuthor {
		summary.CreatedAuthors++
	}
	if resolved.createdStore {
		summary.CreatedStores++
	}
	if resolved.createdBook {
		summary.CreatedBooks++
	}

	createdLine, err := reconcileLine(context, tx.StoreBooks(), resolved.storeID, resolved.bookID, candidate.Price)
	if err != nil {
		return err
	}

	if createdLine {
		summary.CreatedStoreBooks++
	} else {
		summary.UpdatedStoreBooks++
	}
	touched.add(resolved.storeID)

	return nil
}

// rejectionReason renders a field validation failure as a stable,
// machine-grepable reason string, e.g. "missing field: author_name".
func rejectionReason(ae *apperr.AppError) string {
	fields := make([]string, 0, len(ae.Details))
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	return "missing field: " + strings.Join(fields, ", ")
}

// invalidateReports drops cached report documents for every store the batch
// touched. Best effort: a cache failure never fails a committed import.
func (service *Service) invalidateReports(context context.Context, touched touchedStores) {
	if service.cache == nil {
		return
	}
	for _, storeID := range touched.ids() {
		if err := service.cache.Invalidate(context, storeID); err != nil {
			service.logger.Warn("report_cache_invalidation_failed",
				slog.String("store_id", storeID),
				slog.String("error", err.Error()),
			)
		}
	}
}
