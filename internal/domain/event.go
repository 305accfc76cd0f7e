package domain

import "time"

type Venue struct {
	ID       int64
	Name     string
	Address  string
	Capacity int
}

type Event struct {
	ID          int64
	Name        string
	Description string
	Date        time.Time
	VenueID     int64
	OrganizerID int64
}
