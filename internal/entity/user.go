package entity

// User is a person record with profile fields, tracked books and friend links.
type User struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Age     float64    `json:"age"`
	Email   string     `json:"email" validate:"required,email"`
	Books   []UserBook `json:"books" validate:"dive"`
	Friends []string   `json:"friends"`
}

// UserBook joins a user with a book. Comment and Rating are nil when absent.
type UserBook struct {
	BookID  string   `json:"bookId"`
	Comment *string  `json:"comment,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`
	Status  Status   `json:"status" validate:"required,userbook_status"`
}

// UserBookDetails is a UserBook merged with the fields of its Book.
type UserBookDetails struct {
	Book
	UserBook
}

// UserBookStatusUpdate is the body of a status update request.
type UserBookStatusUpdate struct {
	Status Status `json:"status" validate:"required,userbook_status"`
}

type UpdateUserBookStatusRequest struct {
	UserID string
	BookID string
	Status Status
}
