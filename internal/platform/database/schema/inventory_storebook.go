package schema

// InventoryStoreBookTable represents the 'store_books' table
type InventoryStoreBookTable struct {
	Table     string
	ID        string
	StoreID   string
	BookID    string
	Price     string
	Copies    string
	SoldOut   string
	CreatedAt string
	UpdatedAt string
}

// InventoryStoreBook is the schema definition for store_books, the inventory
// line joining a store and a book. Exactly one row may exist per
// (store_id, book_id) pair — enforced by a unique constraint.
var InventoryStoreBook = InventoryStoreBookTable{
	Table:     "store_books",
	ID:        "id",
	StoreID:   "store_id",
	BookID:    "book_id",
	Price:     "price",
	Copies:    "copies",
	SoldOut:   "sold_out",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t InventoryStoreBookTable) Columns() []string {
	return []string{t.ID, t.StoreID, t.BookID, t.Price, t.Copies, t.SoldOut, t.CreatedAt, t.UpdatedAt}
}
