package domain

import "time"

// CatalogDocument describes one published version of the catalog document.
// The newest version is the one served.
type CatalogDocument struct {
	Version   int64     `json:"version"`
	Note      string    `json:"note"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}
