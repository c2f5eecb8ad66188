package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"booktracker/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() entity.User {
	return entity.User{
		ID:    "u1",
		Name:  "Ann",
		Age:   30,
		Email: "a@x.com",
		Books: []entity.UserBook{
			{BookID: "b1", Status: entity.StatusRead},
			{BookID: "b2", Status: entity.StatusWantToRead},
		},
		Friends: []string{"u2"},
	}
}

func TestValidate_ValidUser(t *testing.T) {
	assert.NoError(t, Validate(validUser()))
	u := validUser()
	assert.NoError(t, Validate(&u))
}

func TestValidate_EmailAndStatusDecideValidity(t *testing.T) {
	testCases := []struct {
		name     string
		email    string
		status   entity.Status
		emptyIDs bool
		valid    bool
	}{
		{"valid", "ann@example.com", entity.StatusReading, false, true},
		{"valid want-to-read", "a@x.com", entity.StatusWantToRead, false, true},
		{"empty ids are still valid", "a@x.com", entity.StatusRead, true, true},
		{"bad email", "not-an-email", entity.StatusReading, false, false},
		{"email missing domain", "ann@", entity.StatusRead, false, false},
		{"status outside enum", "a@x.com", "finished", false, false},
		{"status wrong case", "a@x.com", "Reading", false, false},
		{"both invalid", "nope", "done", false, false},
		{"empty ids with bad email", "nope", entity.StatusRead, true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := validUser()
			u.Email = tc.email
			u.Books[1].Status = tc.status
			if tc.emptyIDs {
				u.ID = ""
				u.Books[0].BookID = ""
				u.Books[1].BookID = ""
			}

			err := Validate(u)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDecode_EmptyIDs(t *testing.T) {
	body := `{"id":"","name":"","age":0,"email":"a@x.com","books":[{"bookId":"","status":"read"}],"friends":[]}`

	var u entity.User
	require.NoError(t, Decode([]byte(body), &u))
	assert.Equal(t, "", u.ID)
	require.Len(t, u.Books, 1)
	assert.Equal(t, "", u.Books[0].BookID)
}

func TestValidate_ReportsFieldPaths(t *testing.T) {
	u := validUser()
	u.Email = "invalid-email"
	u.Books[1].Status = "finished"

	err := Validate(u)
	var verr *Error
	require.True(t, errors.As(err, &verr))

	emailErr, ok := verr.Field("email")
	require.True(t, ok, "errors: %v", verr.Fields)
	assert.Equal(t, "email", emailErr.Rule)
	assert.Contains(t, emailErr.Message, "valid email")

	statusErr, ok := verr.Field("books[1].status")
	require.True(t, ok, "errors: %v", verr.Fields)
	assert.Equal(t, "userbook_status", statusErr.Rule)
	assert.Contains(t, statusErr.Message, "read, reading, want-to-read")

	_, ok = verr.Field("books[0].status")
	assert.False(t, ok)
}

func TestValidate_StatusUpdate(t *testing.T) {
	err := Validate(entity.UserBookStatusUpdate{Status: "done"})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	f, ok := verr.Field("status")
	require.True(t, ok)
	assert.Equal(t, "userbook_status", f.Rule)

	assert.NoError(t, Validate(entity.UserBookStatusUpdate{Status: entity.StatusReading}))
}

func TestValidate_SliceOfUsers(t *testing.T) {
	bad := validUser()
	bad.Email = "x"
	err := Validate([]entity.User{validUser(), bad})

	var verr *Error
	require.True(t, errors.As(err, &verr))
	_, ok := verr.Field("[1].email")
	assert.True(t, ok, "errors: %v", verr.Fields)
}

func TestValidate_EmbeddedFieldsAreFlattened(t *testing.T) {
	details := []entity.UserBookDetails{{
		Book:     entity.Book{ID: "b1", Title: "Dune"},
		UserBook: entity.UserBook{BookID: "b1", Status: "nope"},
	}}

	err := Validate(details)
	var verr *Error
	require.True(t, errors.As(err, &verr))
	_, ok := verr.Field("[0].status")
	assert.True(t, ok, "errors: %v", verr.Fields)
}

func TestDecode_User(t *testing.T) {
	body := `{"id":"u1","name":"Ann","age":30,"email":"a@x.com","books":[],"friends":[]}`

	var u entity.User
	require.NoError(t, Decode([]byte(body), &u))
	assert.Equal(t, entity.User{
		ID:      "u1",
		Name:    "Ann",
		Age:     30,
		Email:   "a@x.com",
		Books:   []entity.UserBook{},
		Friends: []string{},
	}, u)
}

func TestDecode_OptionalFieldsStayAbsent(t *testing.T) {
	body := `{"bookId":"b1","status":"read"}`

	var ub entity.UserBook
	require.NoError(t, Decode([]byte(body), &ub))
	assert.Nil(t, ub.Comment)
	assert.Nil(t, ub.Rating)

	body = `{"bookId":"b1","status":"read","comment":"","rating":0}`
	require.NoError(t, Decode([]byte(body), &ub))
	require.NotNil(t, ub.Comment)
	require.NotNil(t, ub.Rating)
	assert.Equal(t, "", *ub.Comment)
	assert.Equal(t, 0.0, *ub.Rating)
}

func TestDecode_MissingFields(t *testing.T) {
	body := `{"id":"u1","name":"Ann","email":"a@x.com","books":[{"bookId":"b1"}]}`

	var u entity.User
	err := Decode([]byte(body), &u)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	for _, field := range []string{"age", "friends", "books[0].status"} {
		f, ok := verr.Field(field)
		if assert.True(t, ok, "missing %s in %v", field, verr.Fields) {
			assert.Equal(t, "required", f.Rule)
		}
	}
	assert.Equal(t, entity.User{}, u, "value must not be partially filled")
}

func TestDecode_StatusOutsideEnum(t *testing.T) {
	body := `{"id":"u1","name":"Ann","age":30,"email":"a@x.com",
		"books":[{"bookId":"b1","status":"finished"}],"friends":[]}`

	var u entity.User
	err := Decode([]byte(body), &u)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "books[0].status", verr.Fields[0].Field)
	assert.Equal(t, "userbook_status", verr.Fields[0].Rule)
}

func TestDecode_WrongType(t *testing.T) {
	body := `{"id":"u1","name":"Ann","age":"thirty","email":"a@x.com","books":[],"friends":[]}`

	var u entity.User
	err := Decode([]byte(body), &u)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "age", verr.Fields[0].Field)
	assert.Equal(t, "type", verr.Fields[0].Rule)
	assert.Contains(t, verr.Fields[0].Message, "a number")
}

func TestDecode_WrongTypeInArrayElement(t *testing.T) {
	body := `{"id":"u1","name":"Ann","age":30,"email":"bad",
		"books":[{"bookId":"b1","status":"read"},{"bookId":"b2","status":5}]}`

	var u entity.User
	err := Decode([]byte(body), &u)

	var verr *Error
	require.True(t, errors.As(err, &verr))

	statusErr, ok := verr.Field("books[1].status")
	require.True(t, ok, "errors: %v", verr.Fields)
	assert.Equal(t, "type", statusErr.Rule)
	assert.Contains(t, statusErr.Message, "a string, got number")
	_, ok = verr.Field("books.status")
	assert.False(t, ok)

	friendsErr, ok := verr.Field("friends")
	require.True(t, ok, "errors: %v", verr.Fields)
	assert.Equal(t, "required", friendsErr.Rule)

	emailErr, ok := verr.Field("email")
	require.True(t, ok, "errors: %v", verr.Fields)
	assert.Equal(t, "email", emailErr.Rule)

	assert.Len(t, verr.Fields, 3)
	assert.Equal(t, entity.User{}, u)
}

func TestDecode_WrongContainerKind(t *testing.T) {
	var users []entity.User
	err := Decode([]byte(`{"id":"u1"}`), &users)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	f, ok := verr.Field("body")
	require.True(t, ok)
	assert.Equal(t, "type", f.Rule)
	assert.Contains(t, f.Message, "an array, got object")
}

func TestDecode_NullInRequiredField(t *testing.T) {
	body := `{"id":"u1","name":"Ann","age":30,"email":"a@x.com","books":null,"friends":[]}`

	var u entity.User
	err := Decode([]byte(body), &u)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	f, ok := verr.Field("books")
	require.True(t, ok)
	assert.Equal(t, "type", f.Rule)
}

func TestDecode_NullBody(t *testing.T) {
	var users []entity.User
	err := Decode([]byte(`null`), &users)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	_, ok := verr.Field("body")
	assert.True(t, ok)
}

func TestDecode_EmptyArray(t *testing.T) {
	var users []entity.User
	require.NoError(t, Decode([]byte(`[]`), &users))
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestDecode_InvalidJSON(t *testing.T) {
	var u entity.User
	err := Decode([]byte(`{"id":"u1","name":`), &u)

	require.Error(t, err)
	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr) || strings.Contains(err.Error(), "unexpected end"))
	assert.Equal(t, entity.User{}, u)
}

func TestDecode_UserBookDetails(t *testing.T) {
	body := `[{"id":"b1","title":"Dune","author":"Frank Herbert","bookId":"b1","status":"reading","rating":4.5}]`

	var details []entity.UserBookDetails
	require.NoError(t, Decode([]byte(body), &details))
	require.Len(t, details, 1)
	assert.Equal(t, "Dune", details[0].Title)
	assert.Equal(t, entity.StatusReading, details[0].Status)
	require.NotNil(t, details[0].Rating)
	assert.Equal(t, 4.5, *details[0].Rating)
	assert.Nil(t, details[0].Comment)
}

func TestDecode_RequiresPointer(t *testing.T) {
	var u entity.User
	assert.Error(t, Decode([]byte(`{}`), u))
	assert.Error(t, Decode([]byte(`{}`), nil))
}
