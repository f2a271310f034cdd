// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction, body decoding,
and multipart file handling, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/apperr"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/constants"
	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// # Multipart Uploads

/*
CSVFile extracts the uploaded inventory file from a multipart form and
enforces the upload gate BEFORE any domain logic runs.

Checks performed:
 1. The form carries a file under the "file" field.
 2. The file is CSV-typed: either a text/csv Content-Type or a .csv filename.

Parameters:
  - request: *http.Request (multipart/form-data)

Returns:
  - io.ReadCloser: The file content stream (caller must close)
  - string: The original filename
  - error: apperr.ValidationError on an unreadable form, a missing field or a
    non-CSV payload
*/
func CSVFile(request *http.Request) (io.ReadCloser, string, error) {
	if err := request.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		return nil, "", apperr.ValidationError("Request body must be a valid multipart form within the upload size limit")
	}

	file, header, err := request.FormFile(constants.UploadFileField)
	if err != nil {
		return nil, "", apperr.ValidationError(`CSV file is required (field name: "file")`)
	}

	if !isCSV(header) {
		_ = file.Close()
		return nil, "", apperr.ValidationError("File must be a .csv")
	}

	return file, header.Filename, nil
}

// isCSV accepts a text/csv Content-Type or a .csv file extension.
func isCSV(header *multipart.FileHeader) bool {
	contentType := header.Header.Get("Content-Type")
	if strings.HasPrefix(strings.ToLower(contentType), constants.CSVContentType) {
		return true
	}
	return strings.HasSuffix(strings.ToLower(header.Filename), ".csv")
}
