package domain

import (
	"encoding/json"
	"time"
)

// Event is a catalog entry as returned by the paged list endpoint.
type Event struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	StartDate string    `json:"startDate,omitempty"`
	EndDate   string    `json:"endDate,omitempty"`
	Location  *Location `json:"location,omitempty"`
	Category  *Category `json:"category,omitempty"`
}

// MapEvent is the slimmer projection served to map views.
type MapEvent struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Image     string       `json:"image,omitempty"`
	StartDate string       `json:"startDate,omitempty"`
	EndDate   string       `json:"endDate,omitempty"`
	Location  *MapLocation `json:"location,omitempty"`
}

// Location is a venue with its full address.
type Location struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Address   *Address `json:"address,omitempty"`
}

// MapLocation carries only what marker rendering needs.
type MapLocation struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address is a street address within a city.
type Address struct {
	ID     int64  `json:"id"`
	Street string `json:"street,omitempty"`
	City   *City  `json:"city,omitempty"`
}

// City is a taxonomy entry for the geographic filter.
type City struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Category is a taxonomy entry for the category filter.
type Category struct {
	ID            int64  `json:"id"`
	Image         string `json:"image,omitempty"`
	EventCategory string `json:"eventCategory"`
}

// FavouriteEvent is an event the user has marked as favourite.
type FavouriteEvent struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Image    string    `json:"image,omitempty"`
	Category *Category `json:"category,omitempty"`
}

// ReactedEvent records the user's reaction to an event.
type ReactedEvent struct {
	EventID      int64  `json:"eventId"`
	ReactionType string `json:"reactionType"`
}

// UserInformation holds the user's stored preferences.
type UserInformation struct {
	FavouriteCategories []string `json:"favouriteCategories,omitempty"`
}

// UserProfile is the authenticated user's profile view.
type UserProfile struct {
	Username        string           `json:"username"`
	Email           string           `json:"email"`
	UserInformation *UserInformation `json:"userInformationDto,omitempty"`
}

// CacheEntry is a cached result set plus the time it was fetched.
// The payload stays opaque JSON so one cache fronts every query surface;
// freshness is judged lazily at read time against the owning TTL.
type CacheEntry struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}
