// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/abdelrahman21-arch/book-store-demo/internal/platform/request"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/respond"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/validate"
)

// Handler exposes store report downloads over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the report endpoints; mounted under /stores.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{storeID}/report", handler.downloadReport)
}

// Routes returns a router with all report endpoints mounted.
func (handler *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func (handler *Handler) downloadReport(writer http.ResponseWriter, request *http.Request) {
	storeID := requestutil.ID(request, "storeID")
	validator := &validate.Validator{}
	if err := validator.UUID("storeID", storeID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	document, err := handler.service.GenerateDocument(request.Context(), storeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Attachment(writer, document.ContentType, document.Filename, document.Body)
}
