package entity

// Book is owned by the catalog service. Every field is optional on the wire.
type Book struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title,omitempty"`
	Author        string `json:"author,omitempty"`
	ISBN          string `json:"isbn,omitempty"`
	Genre         string `json:"genre,omitempty"`
	Publisher     string `json:"publisher,omitempty"`
	Description   string `json:"description,omitempty"`
	CoverURL      string `json:"coverUrl,omitempty"`
	PageCount     *int   `json:"pageCount,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
}
