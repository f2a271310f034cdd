// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/ctxutil"
)

/*
TestRequestID_RoundTrip verifies the request ID survives a context round-trip.
*/
func TestRequestID_RoundTrip(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

/*
TestRequestID_Missing verifies the zero value when no ID was attached.
*/
func TestRequestID_Missing(t *testing.T) {
	assert.Equal(t, "", ctxutil.GetRequestID(context.Background()))
}

/*
TestLogger_RoundTrip verifies the per-request logger survives a context round-trip.
*/
func TestLogger_RoundTrip(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := ctxutil.WithLogger(context.Background(), logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestLogger_FallsBackToDefault verifies the default logger is returned when
no logger is stored in the context.
*/
func TestLogger_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), ctxutil.GetLogger(context.Background()))
}
