package models

import "time"

// Event is a provider-neutral calendar event as decoded from the ICS feed.
// Only the fields the conversion pipeline reads are carried.
type Event struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
}
