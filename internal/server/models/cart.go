package models

import "time"

// PartSnapshot is the immutable copy of display fields taken from a
// boiler part when it is added to a cart. Later catalog changes never
// touch rows that carry a snapshot.
type PartSnapshot struct {
	BoilerManufacturer string `json:"boiler_manufacturer"`
	PartsManufacturer  string `json:"parts_manufacturer"`
	Price              int64  `json:"price"`
	InStock            int64  `json:"in_stock"`
	Image              string `json:"image"`
	Name               string `json:"name"`
}

// CartItem is one row of a user's shopping cart. Count and TotalPrice
// are stored independently: the two patch operations of the public API
// update them separately, so TotalPrice is not derived from Count.
type CartItem struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	PartID int64 `json:"partId"`
	PartSnapshot
	Count      int64     `json:"count"`
	TotalPrice int64     `json:"total_price"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
