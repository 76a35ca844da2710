package commercetools

import "time"

// PagedOrders is the paged query response envelope
type PagedOrders struct {
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
	Count   int        `json:"count"`
	Total   *int       `json:"total,omitempty"`
	Results []OrderDoc `json:"results"`
}

// OrderDoc is a partial order document with the fields the export reads
type OrderDoc struct {
	ID             string    `json:"id"`
	Version        int       `json:"version"`
	OrderNumber    string    `json:"orderNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	LastModifiedAt time.Time `json:"lastModifiedAt"`
}
