package model

// Player is a participant known to the server. Name is a display name only.
type Player struct {
	ID   string
	Name string
}

// ClientPlayer is a seated player as sent to clients.
type ClientPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}
