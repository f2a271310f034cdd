// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/constants"
	requestutil "github.com/abdelrahman21-arch/book-store-demo/internal/platform/request"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/respond"
)

// Handler exposes the inventory import pipeline over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/upload", handler.uploadInventory)
}

// Routes returns a router with all inventory endpoints mounted.
func (handler *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

// uploadInventory accepts a multipart CSV file and runs it through the
// import batch. The whole file commits or none of it does; per-row
// rejections come back inside the summary instead of failing the request.
func (handler *Handler) uploadInventory(writer http.ResponseWriter, request *http.Request) {
	file, _, err := requestutil.CSVFile(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer file.Close()

	summary, err := handler.service.Import(request.Context(), file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{constants.FieldSummary: summary})
}
