package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidStatus is returned when a value is not one of the user book statuses.
var ErrInvalidStatus = errors.New("invalid user book status")

// Status describes a user's relationship to a book.
type Status string

const (
	StatusRead       Status = "read"
	StatusReading    Status = "reading"
	StatusWantToRead Status = "want-to-read"
)

// Statuses returns every valid status in display order.
func Statuses() []Status {
	return []Status{StatusRead, StatusReading, StatusWantToRead}
}

// Valid reports whether s is one of the user book statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusRead, StatusReading, StatusWantToRead:
		return true
	default:
		return false
	}
}

// ParseStatus converts s to a Status, failing with ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}
