package models

// StoreStats holds counters over the whole in-memory store
type StoreStats struct {
	Users    int `json:"users"`
	Projects int `json:"projects"`
	Files    int `json:"files"`
}
