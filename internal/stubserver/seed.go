package stubserver

import "booktracker/internal/entity"

// DemoData returns a small set of users and books for local development.
func DemoData() ([]entity.User, []entity.Book) {
	pages := func(n int) *int { return &n }
	rating := func(r float64) *float64 { return &r }
	comment := func(c string) *string { return &c }

	books := []entity.Book{
		{ID: "b1", Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Genre: "Science Fiction", PageCount: pages(688)},
		{ID: "b2", Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", ISBN: "9780441478125", Genre: "Science Fiction", PageCount: pages(304)},
		{ID: "b3", Title: "Middlemarch", Author: "George Eliot", ISBN: "9780141439549", Genre: "Classics", PageCount: pages(880)},
	}
	users := []entity.User{
		{
			ID: "u1", Name: "Ann", Age: 30, Email: "ann@example.com",
			Books: []entity.UserBook{
				{BookID: "b1", Status: entity.StatusRead, Rating: rating(5), Comment: comment("Reread every few years.")},
				{BookID: "b3", Status: entity.StatusReading},
			},
			Friends: []string{"u2", "u3"},
		},
		{
			ID: "u2", Name: "Bo", Age: 41, Email: "bo@example.com",
			Books:   []entity.UserBook{{BookID: "b2", Status: entity.StatusWantToRead}},
			Friends: []string{"u1"},
		},
		{
			ID: "u3", Name: "Cy", Age: 27, Email: "cy@example.com",
			Books:   []entity.UserBook{},
			Friends: []string{"u1"},
		},
	}
	return users, books
}
