package item

import (
	"errors"
	"time"
)

// Item is one collectible placed on the map, loaded from coach-supplied
// spreadsheets. UID is the stable business key; id is ours.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UID       string    `json:"uid"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Picture   string    `json:"picture"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrBadWorkbook = errors.New("could not read workbook")
