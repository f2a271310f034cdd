package schema

// CatalogAuthorTable represents the 'authors' table
type CatalogAuthorTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
	UpdatedAt string
}

// CatalogAuthor is the schema definition for authors
var CatalogAuthor = CatalogAuthorTable{
	Table:     "authors",
	ID:        "id",
	Name:      "name",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t CatalogAuthorTable) Columns() []string {
	return []string{t.ID, t.Name, t.CreatedAt, t.UpdatedAt}
}
