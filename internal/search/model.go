package search

import "time"

type SearchType string

const (
	SearchTypeFlight SearchType = "flight"
	SearchTypeHotel  SearchType = "hotel"
)

// Search is a persisted search request. Read-only during result processing;
// the pipeline re-runs against it on every results page load.
type Search struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	ClientID      int64      `json:"client_id"`
	Type          SearchType `json:"type"`
	FromLocation  string     `json:"from_location,omitempty"`
	ToLocation    string     `json:"to_location"`
	DepartureDate string     `json:"departure_date"`
	ReturnDate    *string    `json:"return_date,omitempty"`
	Adults        uint32     `json:"adults"`
	Children      uint32     `json:"children"`
	Rooms         *uint32    `json:"rooms,omitempty"`
	WithPets      bool       `json:"with_pets"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateSearchRequest is the POST /search body.
type CreateSearchRequest struct {
	Type          SearchType `json:"type" binding:"required,oneof=flight hotel"`
	FromLocation  string     `json:"from_location"`
	ToLocation    string     `json:"to_location" binding:"required"`
	DepartureDate string     `json:"departure_date" binding:"required"`
	ReturnDate    *string    `json:"return_date"`
	Adults        uint32     `json:"adults" binding:"required,min=1"`
	Children      uint32     `json:"children"`
	Rooms         *uint32    `json:"rooms"`
	WithPets      bool       `json:"with_pets"`
}
