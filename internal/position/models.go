package position

import (
	"sort"
	"strings"
	"time"
)

type Position struct {
	ID        int64      `json:"id"`
	RunID     string     `json:"run"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	DateTime  *time.Time `json:"date_time,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateRequest carries the raw sample as submitted; latitude and longitude
// are pointers so a missing field is distinguishable from zero.
type CreateRequest struct {
	RunID     string   `json:"run"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	DateTime  string   `json:"date_time"`
}

// FieldErrors maps a failed field to the reason it was rejected.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}
