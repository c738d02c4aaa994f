package geolib

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const httpHandlerTimeout = time.Minute

type httpHandler struct {
	geo *Geolocalizer
}

func (h httpHandler) encodeJSON(w http.ResponseWriter, data interface{}) {
	encoder := json.NewEncoder(w)

	w.Header().Set("Content-Type", "application/json")
	encoder.SetEscapeHTML(false)
	encoder.Encode(data) // nolint: errcheck
}

func (h httpHandler) sendError(w http.ResponseWriter, err error, message string, statusCode int) {
	e := &httpError{
		message:    message,
		statusCode: statusCode,
		err:        err,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode())
	json.NewEncoder(w).Encode(e) // nolint: errcheck
}

func (h httpHandler) lookupStatusCode(err error) int {
	var lookupErr *LookupError

	switch {
	case errors.Is(err, ErrInvalidIP):
		return http.StatusBadRequest
	case errors.As(err, &lookupErr):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

func (h httpHandler) withCallerIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if ip := RemoteIP(req); ip != nil {
			req = req.WithContext(WithCallerIP(req.Context(), ip))
		}

		next.ServeHTTP(w, req)
	})
}

func newHTTPHandler(geo *Geolocalizer) http.Handler {
	handler := httpHandler{
		geo: geo,
	}
	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Recoverer)

	if geo.opts.TrustProxyHeaders {
		router.Use(middleware.RealIP)
	}

	router.Use(middleware.Timeout(httpHandlerTimeout))
	router.Use(handler.withCallerIP)

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handler.sendError(w, nil, "Unknown path", http.StatusNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		handler.sendError(w, nil, "This HTTP method is not allowed", http.StatusMethodNotAllowed)
	})

	router.Get("/", handler.handleGetSelf)
	router.Get("/ip/{ip}", handler.handleGetIP)
	router.Get("/reverse", handler.handleGetReverse)
	router.Get("/countries", handler.handleGetCountries)
	router.Get("/stats", handler.handleGetStats)
	router.Post("/render", handler.handlePostRender)

	return router
}
