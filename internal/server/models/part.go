package models

import (
	"encoding/json"
	"time"
)

// BoilerPart is a catalog entry. Images holds a JSON-serialized list of
// object-storage keys kept as a single text column, matching the
// historical wire format.
type BoilerPart struct {
	ID                 int64     `json:"id"`
	BoilerManufacturer string    `json:"boiler_manufacturer"`
	PartsManufacturer  string    `json:"parts_manufacturer"`
	VendorCode         string    `json:"vendor_code"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Compatibility      string    `json:"compatibility"`
	Images             string    `json:"images"`
	Price              int64     `json:"price"`
	InStock            int64     `json:"in_stock"`
	Bestseller         bool      `json:"bestseller"`
	New                bool      `json:"new"`
	Popularity         int64     `json:"popularity"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ImageList decodes the serialized Images column. A plain (non-JSON)
// value is treated as a single key; an empty column yields nil.
func (p *BoilerPart) ImageList() []string {
	if p.Images == "" {
		return nil
	}
	var keys []string
	if err := json.Unmarshal([]byte(p.Images), &keys); err != nil {
		return []string{p.Images}
	}
	return keys
}
