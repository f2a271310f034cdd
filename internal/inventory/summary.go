// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package inventory

// RowError describes one rejected row: the raw record as uploaded plus the
// reason it was skipped. Rejected rows never abort the batch.
//
// Row uses the same numbering as [Record.Row]: 1-based over data records,
// excluding the header and any blank lines.
type RowError struct {
	Row    int               `json:"row"`
	Record map[string]string `json:"record"`
	Reason string            `json:"reason"`
}

// Summary is the aggregate outcome of one committed import batch.
type Summary struct {
	// Processed counts every data row read from the file, valid or not.
	Processed int `json:"processed"`

	CreatedAuthors    int `json:"createdAuthors"`
	CreatedStores     int `json:"createdStores"`
	CreatedBooks      int `json:"createdBooks"`
	CreatedStoreBooks int `json:"createdStoreBooks"`
	UpdatedStoreBooks int `json:"updatedStoreBooks"`

	// Errors lists every rejected row in input order.
	Errors []RowError `json:"errors"`
}

// touchedStores tracks the distinct stores mutated by the batch, used to
// invalidate cached reports after commit.
type touchedStores map[string]struct{}

func (t touchedStores) add(storeID string) {
	t[storeID] = struct{}{}
}

func (t touchedStores) ids() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	return ids
}
