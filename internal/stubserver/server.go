// Package stubserver is an in-memory stand-in for the book tracker API. It
// serves the six endpoints the client calls and is meant for local
// development and tests.
package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"booktracker/internal/entity"
	"booktracker/internal/schema"

	"github.com/sirupsen/logrus"
)

// UserIDHeader selects the current user for /api/me.
const UserIDHeader = "X-User-Id"

type Server struct {
	store         *Store
	defaultUserID string
	log           logrus.FieldLogger
}

func New(store *Store, defaultUserID string, log logrus.FieldLogger) *Server {
	return &Server{store: store, defaultUserID: defaultUserID, log: log}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/me", s.currentUser)
	mux.HandleFunc("GET /api/users", s.listUsers)
	mux.HandleFunc("GET /api/users/{id}", s.getUser)
	mux.HandleFunc("GET /api/users/{id}/friends", s.listFriends)
	mux.HandleFunc("GET /api/users/{id}/books", s.listUserBooks)
	mux.HandleFunc("PUT /api/users/{userId}/books/{bookId}", s.updateUserBookStatus)

	return requestIDMiddleware(accessLogMiddleware(s.log)(mux))
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		userID = s.defaultUserID
	}
	u, err := s.store.User(userID)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Users())
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.User(r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) listFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := s.store.Friends(r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, friends)
}

func (s *Server) listUserBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.store.UserBooks(r.PathValue("id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) updateUserBookStatus(w http.ResponseWriter, r *http.Request) {
	var req entity.UserBookStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if err := schema.Validate(req); err != nil {
		var verr *schema.Error
		if errors.As(err, &verr) {
			writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid status", verr.Fields)
			return
		}
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}

	ub, err := s.store.SetStatus(r.PathValue("userId"), r.PathValue("bookId"), req.Status)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ub)
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	case errors.Is(err, ErrBookNotFound):
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	default:
		s.log.WithError(err).Error("store failure")
		writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
	}
}
