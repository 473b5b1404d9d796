package models

// Update is a transport-neutral inbound chat event.
type Update struct {
	ID       int
	Chat     Chat
	Sender   *Sender
	Text     string
	Location *Location
}

type Chat struct {
	ID      int64
	Private bool
}

// Sender carries the identity fields mirrored into UserPreference.
type Sender struct {
	ID        int64
	FirstName string
	LastName  *string
	Username  *string
}

// Location is a coordinate in degrees. Values are not range checked.
type Location struct {
	Lat float64
	Lng float64
}
