package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"booktracker/internal/entity"
	"booktracker/internal/schema"
)

func (c *Client) FetchCurrentUser(ctx context.Context) (entity.User, error) {
	return call[entity.User](ctx, c, http.MethodGet, "/api/me", nil)
}

func (c *Client) FetchUsers(ctx context.Context) ([]entity.User, error) {
	return call[[]entity.User](ctx, c, http.MethodGet, "/api/users", nil)
}

func (c *Client) FetchUser(ctx context.Context, id string) (entity.User, error) {
	path, err := userPath(id, "")
	if err != nil {
		return entity.User{}, err
	}
	return call[entity.User](ctx, c, http.MethodGet, path, nil)
}

func (c *Client) FetchFriends(ctx context.Context, id string) ([]entity.User, error) {
	path, err := userPath(id, "/friends")
	if err != nil {
		return nil, err
	}
	return call[[]entity.User](ctx, c, http.MethodGet, path, nil)
}

// FetchUserBooks returns the user's books merged with their catalog fields.
func (c *Client) FetchUserBooks(ctx context.Context, id string) ([]entity.UserBookDetails, error) {
	path, err := userPath(id, "/books")
	if err != nil {
		return nil, err
	}
	return call[[]entity.UserBookDetails](ctx, c, http.MethodGet, path, nil)
}

// UpdateUserBookStatus sets the status of one of the user's books. Repeating
// the call with the same status leaves the same end state.
func (c *Client) UpdateUserBookStatus(ctx context.Context, req entity.UpdateUserBookStatusRequest) (entity.UserBook, error) {
	if req.UserID == "" {
		return entity.UserBook{}, fmt.Errorf("%w: userId", ErrEmptyID)
	}
	if req.BookID == "" {
		return entity.UserBook{}, fmt.Errorf("%w: bookId", ErrEmptyID)
	}
	body := entity.UserBookStatusUpdate{Status: req.Status}
	if err := schema.Validate(body); err != nil {
		return entity.UserBook{}, err
	}

	path := fmt.Sprintf("/api/users/%s/books/%s", url.PathEscape(req.UserID), url.PathEscape(req.BookID))
	return call[entity.UserBook](ctx, c, http.MethodPut, path, body)
}

func userPath(id, suffix string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: id", ErrEmptyID)
	}
	return "/api/users/" + url.PathEscape(id) + suffix, nil
}
