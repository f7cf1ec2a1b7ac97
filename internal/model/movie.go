// Package model defines the core film-series data types.
package model

import "time"

// Movie is a single catalog entry. ID is a stable slug derived from the title.
type Movie struct {
	ID        string     `json:"id"`
	Series    string     `json:"series,omitempty"`
	Title     string     `json:"title"`
	Year      int        `json:"year,omitempty"`
	Director  string     `json:"director,omitempty"`
	Runtime   int        `json:"runtime,omitempty"` // minutes
	Showtimes []Showtime `json:"showtimes,omitempty"`
}

// Showtime is one scheduled screening of a movie.
type Showtime struct {
	Start time.Time `json:"start"`
	Venue string    `json:"venue,omitempty"`
}

// User owns a set of reactions.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
