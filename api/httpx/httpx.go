// Package httpx holds the JSON and error plumbing shared by the API handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/scheduler"
	"github.com/kilianp07/studyplan/core/store"
	"github.com/kilianp07/studyplan/infra/logger"
)

// UserHeader carries the id of the student a request acts for.
const UserHeader = "X-User-ID"

// maxBody bounds request bodies, spreadsheets included.
const maxBody = 8 << 20

var log = logger.New("api")

// HandlerFunc is an API handler bound to a user. A returned error is
// written with WriteError.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, userID string) error

func (h HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(UserHeader)
	if userID == "" {
		WriteError(w, fmt.Errorf("missing %s header: %w", UserHeader, model.ErrInvalid))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := h(w, r, userID); err != nil {
		WriteError(w, err)
	}
}

// Auth requires "Authorization: Bearer <token>" when token is non-empty.
func Auth(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging logs one debug line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debugw("request", map[string]any{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		})
	})
}

// Decode reads a JSON body into v. An empty body leaves v untouched.
func Decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("decode body: %v: %w", err, model.ErrInvalid)
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("encode response: %v", err)
	}
}

// StatusOf maps service errors to HTTP status codes.
func StatusOf(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, scheduler.ErrUsage), errors.Is(err, model.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as {"error": "..."}. Internal errors are logged and
// their text is not exposed.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Errorf("internal error: %v", err)
		msg = "internal error"
	}
	writeJSONError(w, status, msg)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}
