package stubserver

import (
	"errors"
	"sync"

	"booktracker/internal/entity"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrBookNotFound = errors.New("book not found")
)

// Store keeps users and the book catalog in memory.
type Store struct {
	mu    sync.RWMutex
	order []string
	users map[string]*entity.User
	books map[string]entity.Book
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*entity.User),
		books: make(map[string]entity.Book),
	}
}

// Seed replaces the store contents.
func (s *Store) Seed(users []entity.User, books []entity.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	s.users = make(map[string]*entity.User, len(users))
	for _, u := range users {
		u := cloneUser(u)
		if _, exists := s.users[u.ID]; !exists {
			s.order = append(s.order, u.ID)
		}
		s.users[u.ID] = &u
	}
	s.books = make(map[string]entity.Book, len(books))
	for _, b := range books {
		s.books[b.ID] = b
	}
}

func (s *Store) Users() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]entity.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, cloneUser(*s.users[id]))
	}
	return users
}

func (s *Store) User(id string) (entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return entity.User{}, ErrUserNotFound
	}
	return cloneUser(*u), nil
}

// Friends resolves the user's friend ids. Ids with no matching user are skipped.
func (s *Store) Friends(id string) ([]entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	friends := make([]entity.User, 0, len(u.Friends))
	for _, friendID := range u.Friends {
		if f, ok := s.users[friendID]; ok {
			friends = append(friends, cloneUser(*f))
		}
	}
	return friends, nil
}

// UserBooks merges each of the user's books with its catalog entry.
func (s *Store) UserBooks(id string) ([]entity.UserBookDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	details := make([]entity.UserBookDetails, 0, len(u.Books))
	for _, ub := range u.Books {
		b := s.books[ub.BookID]
		b.ID = ub.BookID
		details = append(details, entity.UserBookDetails{Book: b, UserBook: cloneUserBook(ub)})
	}
	return details, nil
}

// SetStatus updates the status of a user's book, adding the book to the
// user's list when it is not there yet.
func (s *Store) SetStatus(userID, bookID string, status entity.Status) (entity.UserBook, error) {
	if !status.Valid() {
		return entity.UserBook{}, entity.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return entity.UserBook{}, ErrUserNotFound
	}
	if _, ok := s.books[bookID]; !ok {
		return entity.UserBook{}, ErrBookNotFound
	}
	for i := range u.Books {
		if u.Books[i].BookID == bookID {
			u.Books[i].Status = status
			return cloneUserBook(u.Books[i]), nil
		}
	}
	ub := entity.UserBook{BookID: bookID, Status: status}
	u.Books = append(u.Books, ub)
	return ub, nil
}

func cloneUser(u entity.User) entity.User {
	books := make([]entity.UserBook, len(u.Books))
	for i, ub := range u.Books {
		books[i] = cloneUserBook(ub)
	}
	u.Books = books
	u.Friends = append(make([]string, 0, len(u.Friends)), u.Friends...)
	return u
}

func cloneUserBook(ub entity.UserBook) entity.UserBook {
	if ub.Comment != nil {
		comment := *ub.Comment
		ub.Comment = &comment
	}
	if ub.Rating != nil {
		rating := *ub.Rating
		ub.Rating = &rating
	}
	return ub
}
