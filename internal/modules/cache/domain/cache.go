package domain

// Cache is the novelty marker persisted between runs: the isoDate of the
// last announced feed entry.
type Cache struct {
	ISODate string `json:"isoDate"`
}
