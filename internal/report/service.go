// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abdelrahman21-arch/book-store-demo/internal/catalog"
	"github.com/abdelrahman21-arch/book-store-demo/pkg/slug"
)

// Service builds store reports and renders them for download.
type Service struct {
	stores   catalog.StoreRepository
	repo     Repository
	renderer Renderer
	cache    DocumentCache
	logger   *slog.Logger
}

// NewService constructs a new [Service].
//
// cache may be nil; documents are then rendered on every request.
func NewService(stores catalog.StoreRepository, repo Repository, renderer Renderer, cache DocumentCache, logger *slog.Logger) *Service {
	return &Service{
		stores:   stores,
		repo:     repo,
		renderer: renderer,
		cache:    cache,
		logger:   logger,
	}
}

/*
BuildReport aggregates the store's current inventory into a report.

Parameters:
  - context: context.Context
  - storeID: string (UUID)

Returns:
  - *Report: Both rankings plus the store and generation timestamp
  - error: apperr.NotFound when the store does not exist
*/
func (service *Service) BuildReport(context context.Context, storeID string) (*Report, error) {

	// The store must exist even when it carries no inventory: an empty
	// report for a real store is valid, a report for a missing one is not.
	store, err := service.stores.FindByID(context, storeID)
	if err != nil {
		return nil, err
	}

	return service.buildFor(context, store)
}

// buildFor aggregates both rankings for an already-resolved store.
func (service *Service) buildFor(context context.Context, store *catalog.Store) (*Report, error) {
	priciest, err := service.repo.PriciestBooks(context, store.ID, TopCount)
	if err != nil {
		return nil, err
	}

	prolific, err := service.repo.ProlificAuthors(context, store.ID, TopCount)
	if err != nil {
		return nil, err
	}

	return &Report{
		Store:           store,
		GeneratedAt:     time.Now(),
		PriciestBooks:   priciest,
		ProlificAuthors: prolific,
	}, nil
}

/*
GenerateDocument returns the store's report rendered for download.

Description: Documents are cached per store per calendar day. A cache hit
skips both the aggregation queries and the renderer; the import pipeline
invalidates the cache for every store a committed batch touches, so a hit is
never stale.

Parameters:
  - context: context.Context
  - storeID: string (UUID)

Returns:
  - *Document: Filename, content type and rendered bytes
  - error: apperr.NotFound when the store does not exist, or a render failure
*/
func (service *Service) GenerateDocument(context context.Context, storeID string) (*Document, error) {
	store, err := service.stores.FindByID(context, storeID)
	if err != nil {
		return nil, err
	}

	day := time.Now()
	filename := documentFilename(store, day)

	if service.cache != nil {
		if body, ok := service.cache.Get(context, storeID, day); ok {
			return &Document{
				Filename:    filename,
				ContentType: service.renderer.ContentType(),
				Body:        body,
			}, nil
		}
	}

	report, err := service.buildFor(context, store)
	if err != nil {
		return nil, err
	}

	body, err := service.renderer.Render(report)
	if err != nil {
		return nil, fmt.Errorf("report: render failed: %w", err)
	}

	if service.cache != nil {
		if err := service.cache.Set(context, storeID, day, body); err != nil {
			// Caching is an optimization: log the failure and serve the document.
			service.logger.WarnContext(context, "report_cache_set_failed",
				slog.String("store_id", storeID),
				slog.String("error", err.Error()),
			)
		}
	}

	return &Document{
		Filename:    filename,
		ContentType: service.renderer.ContentType(),
		Body:        body,
	}, nil
}

// documentFilename builds the attachment name: <store-slug>-Report-<YYYY-MM-DD>.pdf.
func documentFilename(store *catalog.Store, day time.Time) string {
	return fmt.Sprintf("%s-Report-%s.pdf", slug.From(store.Name), day.Format("2006-01-02"))
}
