package schema

// CatalogStoreTable represents the 'stores' table
type CatalogStoreTable struct {
	Table     string
	ID        string
	Name      string
	Address   string
	CreatedAt string
	UpdatedAt string
}

// CatalogStore is the schema definition for stores.
// Identity is the (name, address) pair: two stores sharing a name at
// different addresses are distinct rows.
var CatalogStore = CatalogStoreTable{
	Table:     "stores",
	ID:        "id",
	Name:      "name",
	Address:   "address",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t CatalogStoreTable) Columns() []string {
	return []string{t.ID, t.Name, t.Address, t.CreatedAt, t.UpdatedAt}
}
