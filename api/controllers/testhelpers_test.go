package controllers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rc, ok := req.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rc == nil {
		rc = chi.NewRouteContext()
	}
	rc.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func httpBody(raw string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(raw))
}
