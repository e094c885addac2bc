// Package httpapi exposes the review collection over HTTP: a JSON CRUD
// surface plus a websocket push channel carrying mutation events.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"live-reviews/domain"
	apperrors "live-reviews/errors"
	"live-reviews/services"
)

type Server struct {
	log                  *slog.Logger
	service              services.IReviewService
	upgrader             websocket.Upgrader
	allowedOrigin        string
	connectionBufferSize int
	writeTimeout         time.Duration
}

func NewServer(log *slog.Logger, service services.IReviewService,
	allowedOrigin string, connectionBufferSize int, writeTimeout time.Duration) *Server {
	s := &Server{
		log:                  log,
		service:              service,
		allowedOrigin:        allowedOrigin,
		connectionBufferSize: connectionBufferSize,
		writeTimeout:         writeTimeout,
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	return s
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logging, s.cors)

	r.Methods(http.MethodPost).Path("/reviews").HandlerFunc(s.createReview)
	r.Methods(http.MethodGet).Path("/reviews").HandlerFunc(s.listReviews)
	r.Methods(http.MethodGet).Path("/reviews/search").HandlerFunc(s.searchReviews)
	r.Methods(http.MethodGet).Path("/reviews/{id}").HandlerFunc(s.getReview)
	r.Methods(http.MethodPut).Path("/reviews/{id}").HandlerFunc(s.updateReview)
	r.Methods(http.MethodDelete).Path("/reviews/{id}").HandlerFunc(s.deleteReview)
	r.Methods(http.MethodGet).Path("/ws").HandlerFunc(s.subscribe)
	r.Methods(http.MethodGet).Path("/healthz").HandlerFunc(s.health)
	// Preflight requests are answered by the CORS middleware
	r.Methods(http.MethodOptions).PathPrefix("/").HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	return r
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		m := httpsnoop.CaptureMetrics(next, writer, request)
		s.log.Info("handled",
			"method", request.Method,
			"url", request.URL.String(),
			"duration", m.Duration,
			"status", m.Code)
	})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
		writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if request.Method == http.MethodOptions {
			writer.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if s.allowedOrigin == "*" {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.allowedOrigin
}

func (s *Server) createReview(writer http.ResponseWriter, request *http.Request) {
	var input ReviewInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		s.writeError(writer, http.StatusBadRequest, "invalid body")
		return
	}
	review, err := s.service.Create(request.Context(), input.Title, input.Content)
	if err != nil {
		s.writeServiceError(writer, err)
		return
	}
	s.writeJSON(writer, http.StatusCreated, review)
}

func (s *Server) listReviews(writer http.ResponseWriter, request *http.Request) {
	reviews, err := s.service.List(request.Context())
	if err != nil {
		s.writeServiceError(writer, err)
		return
	}
	s.writeJSON(writer, http.StatusOK, nonNil(reviews))
}

func (s *Server) getReview(writer http.ResponseWriter, request *http.Request) {
	id, ok := s.reviewID(writer, request)
	if !ok {
		return
	}
	review, err := s.service.Get(request.Context(), id)
	if err != nil {
		s.writeServiceError(writer, err)
		return
	}
	s.writeJSON(writer, http.StatusOK, review)
}

func (s *Server) updateReview(writer http.ResponseWriter, request *http.Request) {
	id, ok := s.reviewID(writer, request)
	if !ok {
		return
	}
	var input ReviewInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		s.writeError(writer, http.StatusBadRequest, "invalid body")
		return
	}
	review, err := s.service.Update(request.Context(), id, input.Title, input.Content)
	if err != nil {
		s.writeServiceError(writer, err)
		return
	}
	s.writeJSON(writer, http.StatusOK, review)
}

func (s *Server) deleteReview(writer http.ResponseWriter, request *http.Request) {
	id, ok := s.reviewID(writer, request)
	if !ok {
		return
	}
	if _, err := s.service.Delete(request.Context(), id); err != nil {
		s.writeServiceError(writer, err)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

func (s *Server) searchReviews(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get("q")
	if query == "" {
		s.writeJSON(writer, http.StatusOK, nonNil[domain.Review](nil))
		return
	}
	reviews, err := s.service.Search(request.Context(), query)
	if err != nil {
		s.writeServiceError(writer, err)
		return
	}
	s.writeJSON(writer, http.StatusOK, nonNil(reviews))
}

func (s *Server) health(writer http.ResponseWriter, _ *http.Request) {
	s.writeJSON(writer, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.service.SessionCount(),
	})
}

// reviewID parses the path id. A string that is not a uuid cannot name any
// record, so it gets the same not-found answer as an unknown id.
func (s *Server) reviewID(writer http.ResponseWriter, request *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(request)["id"])
	if err != nil {
		s.writeError(writer, http.StatusNotFound, "not found")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) writeServiceError(writer http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		s.writeError(writer, http.StatusNotFound, "not found")
	case errors.Is(err, apperrors.ErrValidation):
		s.writeError(writer, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("Request failed", "error", err)
		s.writeError(writer, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(writer http.ResponseWriter, status int, message string) {
	s.writeJSON(writer, status, map[string]string{"error": message})
}

func (s *Server) writeJSON(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		s.log.Error("Failed to encode response", "error", err)
	}
}

// nonNil keeps empty list responses as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
