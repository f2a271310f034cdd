package schema

// CatalogBookTable represents the 'books' table
type CatalogBookTable struct {
	Table     string
	ID        string
	Name      string
	Pages     string
	AuthorID  string
	CreatedAt string
	UpdatedAt string
}

// CatalogBook is the schema definition for books.
// Identity is the (name, author_id) pair.
var CatalogBook = CatalogBookTable{
	Table:     "books",
	ID:        "id",
	Name:      "name",
	Pages:     "pages",
	AuthorID:  "author_id",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t CatalogBookTable) Columns() []string {
	return []string{t.ID, t.Name, t.Pages, t.AuthorID, t.CreatedAt, t.UpdatedAt}
}
